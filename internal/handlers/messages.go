package handlers

// Flash messages shown to visitors
const (
	flashInvalidCredentials = "Invalid credentials."
	flashUsernameTaken      = "Username already exists."
	flashRegistered         = "Registration successful! Please login."
	flashAddedToCartFormat  = "%s added to cart!"
	flashCartEmpty          = "Your cart is empty."
	flashCartFullFormat     = "Your cart can hold at most %d cakes."
	flashOrderPlaced        = "Order placed successfully!"
	flashOrderFailed        = "Could not place order."
	flashCakeNotFound       = "Cake not found."
	flashCakeAdded          = "New cake added!"
	flashCakeUpdated        = "Cake updated successfully!"
	flashCakeDeleted        = "Cake deleted successfully!"
	flashCakeSaveFailed     = "Could not save cake."
	flashOrderNotFound      = "Order not found."
	flashOrderUpdated       = "Order status updated."
	flashInvalidStatus      = "Invalid order status."
	flashUserNotFound       = "User not found."
	flashInvalidRole        = "Invalid role."
	flashRoleUpdated        = "User role updated!"
	flashUserDeleted        = "User deleted."
	flashSelfDelete         = "You cannot delete your own account!"
	flashSomethingWentWrong = "Something went wrong. Please try again."
)

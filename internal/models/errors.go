package models

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrCakeNotFound       = errors.New("cake not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrSelfDelete         = errors.New("cannot delete own account")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCartFull           = errors.New("cart is full")
)

// ValidationError describes rejected form input in words fit for the user
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

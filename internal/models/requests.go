package models

// RegisterRequest is the registration form
type RegisterRequest struct {
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6,bcryptlen"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// CakeRequest is the admin create/edit cake form.
// Price stays a string until validated so the form can be re-rendered as typed.
type CakeRequest struct {
	Name        string `validate:"required,max=255"`
	Price       string `validate:"required,price"`
	Description string `validate:"max=2000"`
	Image       string `validate:"omitempty,url,max=512"`
	Category    string `validate:"max=100"`
}

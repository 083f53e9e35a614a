package views

import (
	"github.com/cakebakery/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Page names, one per file under templates/
const (
	PageIndex          = "index"
	PageServices       = "services"
	PageAbout          = "about"
	PageContact        = "contact"
	PageShop           = "shop"
	PageRegister       = "register"
	PageLogin          = "login"
	PageCart           = "cart"
	PageUserDashboard  = "dashboard_user"
	PageAdminDashboard = "dashboard_admin"
	PageAnalytics      = "analytics"
	PageAddCake        = "admin_add_cake"
	PageEditCake       = "admin_edit_cake"
	PageDeleteCake     = "admin_delete_cake"
)

// ShopData lists the catalog with category filter links
type ShopData struct {
	Cakes      []models.Cake
	Categories []string
	Selected   string
}

// AuthFormData re-fills the login and register forms
type AuthFormData struct {
	Username string
	Error    string
}

// CartData lists cart lines and their total
type CartData struct {
	Items []models.CartItem
	Total decimal.Decimal
}

// UserDashboardData is a user's order history
type UserDashboardData struct {
	Orders []models.Order
}

// AdminDashboardData is everything on the back-office home page
type AdminDashboardData struct {
	Orders        []models.OrderWithUser
	Users         []models.User
	Cakes         []models.Cake
	Analytics     *models.Analytics
	CurrentUserID int
}

// AnalyticsData feeds the charts page
type AnalyticsData struct {
	Analytics *models.Analytics
}

// CakeFormData re-fills the add and edit cake forms
type CakeFormData struct {
	ID    int
	Form  models.CakeRequest
	Error string
}

// DeleteCakeData asks the admin to confirm a deletion
type DeleteCakeData struct {
	Cake *models.Cake
}

// CakeFormFromCake pre-fills the edit form with a stored cake
func CakeFormFromCake(cake *models.Cake) CakeFormData {
	return CakeFormData{
		ID: cake.ID,
		Form: models.CakeRequest{
			Name:        cake.Name,
			Price:       cake.Price.StringFixed(2),
			Description: cake.Description,
			Image:       cake.Image,
			Category:    cake.Category,
		},
	}
}

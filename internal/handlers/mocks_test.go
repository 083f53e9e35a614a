package handlers

import (
	"context"
	"errors"

	"github.com/cakebakery/backend/internal/models"
)

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	users       map[string]*models.User
	passwords   map[string]string
	registerErr error
	loginErr    error
	registered  []string
}

func newMockAuthService(users ...*models.User) *mockAuthService {
	m := &mockAuthService{users: map[string]*models.User{}, passwords: map[string]string{}}
	for _, u := range users {
		m.users[u.Username] = u
		m.passwords[u.Username] = "secret1"
	}
	return m
}

func (m *mockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	if len(req.Username) < 3 {
		return nil, &models.ValidationError{Field: "Username", Message: "Username must be at least 3 characters."}
	}
	if _, ok := m.users[req.Username]; ok {
		return nil, models.ErrDuplicateUsername
	}
	u := &models.User{ID: len(m.users) + 1, Username: req.Username, Role: models.RoleUser}
	m.users[u.Username] = u
	m.passwords[u.Username] = req.Password
	m.registered = append(m.registered, u.Username)
	return u, nil
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	u, ok := m.users[req.Username]
	if !ok || m.passwords[req.Username] != req.Password {
		return nil, models.ErrInvalidCredentials
	}
	return u, nil
}

// mockCatalogService is a mock implementation of ShopService and AdminCatalogService
type mockCatalogService struct {
	cakes        []models.Cake
	categories   []string
	err          error
	lastCategory string
	created      []*models.CakeRequest
	updatedID    int
	deletedID    int
}

func (m *mockCatalogService) ListCakes(ctx context.Context, category string) ([]models.Cake, error) {
	m.lastCategory = category
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Cake
	for _, c := range m.cakes {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockCatalogService) Categories(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCatalogService) GetCake(ctx context.Context, id int) (*models.Cake, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.cakes {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, models.ErrCakeNotFound
}

func validateCakeRequest(req *models.CakeRequest) error {
	if req.Name == "" {
		return &models.ValidationError{Field: "Name", Message: "Name is required."}
	}
	if req.Price == "" || req.Price == "abc" {
		return &models.ValidationError{Field: "Price", Message: "Price must be a positive amount below 100000000 with at most two decimals."}
	}
	return nil
}

func (m *mockCatalogService) CreateCake(ctx context.Context, req *models.CakeRequest) (*models.Cake, error) {
	if err := validateCakeRequest(req); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, req)
	return &models.Cake{ID: 100, Name: req.Name}, nil
}

func (m *mockCatalogService) UpdateCake(ctx context.Context, id int, req *models.CakeRequest) (*models.Cake, error) {
	if err := validateCakeRequest(req); err != nil {
		return nil, err
	}
	if _, err := m.GetCake(ctx, id); err != nil {
		return nil, err
	}
	m.updatedID = id
	return &models.Cake{ID: id, Name: req.Name}, nil
}

func (m *mockCatalogService) DeleteCake(ctx context.Context, id int) error {
	if _, err := m.GetCake(ctx, id); err != nil {
		return err
	}
	m.deletedID = id
	return nil
}

// memoryCakeRepository is an in-memory cake table for exercising the real catalog service
type memoryCakeRepository struct {
	cakes []models.Cake
}

func (m *memoryCakeRepository) GetAll(ctx context.Context, category string) ([]models.Cake, error) {
	var out []models.Cake
	for _, c := range m.cakes {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryCakeRepository) GetCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *memoryCakeRepository) GetByID(ctx context.Context, id int) (*models.Cake, error) {
	for _, c := range m.cakes {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, models.ErrCakeNotFound
}

func (m *memoryCakeRepository) Create(ctx context.Context, cake *models.Cake) error {
	cake.ID = len(m.cakes) + 1
	m.cakes = append(m.cakes, *cake)
	return nil
}

func (m *memoryCakeRepository) Update(ctx context.Context, cake *models.Cake) error {
	for i := range m.cakes {
		if m.cakes[i].ID == cake.ID {
			m.cakes[i] = *cake
			return nil
		}
	}
	return models.ErrCakeNotFound
}

func (m *memoryCakeRepository) Delete(ctx context.Context, id int) error {
	for i, c := range m.cakes {
		if c.ID == id {
			m.cakes = append(m.cakes[:i], m.cakes[i+1:]...)
			return nil
		}
	}
	return models.ErrCakeNotFound
}

// mockCartService is a mock implementation of CartService backed by a fixed catalog
type mockCartService struct {
	catalog     *mockCatalogService
	checkoutErr error
	placedFor   int
	placed      []string
}

func (m *mockCartService) AddToCart(ctx context.Context, cart *models.Cart, cakeID int) (*models.CartItem, error) {
	if cart.Full() {
		return nil, models.ErrCartFull
	}
	cake, err := m.catalog.GetCake(ctx, cakeID)
	if err != nil {
		return nil, err
	}
	item := cart.Add(cake)
	return &item, nil
}

func (m *mockCartService) Checkout(ctx context.Context, userID int, cart *models.Cart) (int, error) {
	if cart.Len() == 0 {
		return 0, models.ErrEmptyCart
	}
	if cart.Units() > models.MaxCartUnits {
		return 0, models.ErrCartFull
	}
	if m.checkoutErr != nil {
		return 0, m.checkoutErr
	}
	m.placedFor = userID
	m.placed = append(m.placed, cart.CakeNames()...)
	n := cart.Units()
	cart.Clear()
	return n, nil
}

// mockOrderService is a mock implementation of OrderHistoryService and AdminOrderService
type mockOrderService struct {
	orders        []models.OrderWithUser
	analytics     *models.Analytics
	err           error
	updatedID     int
	updatedStatus string
}

func (m *mockOrderService) UserOrders(ctx context.Context, userID int) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o.Order)
		}
	}
	return out, nil
}

func (m *mockOrderService) AllOrders(ctx context.Context) ([]models.OrderWithUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id int, status string) error {
	if _, err := models.ParseOrderStatus(status); err != nil {
		return err
	}
	for _, o := range m.orders {
		if o.ID == id {
			m.updatedID = id
			m.updatedStatus = status
			return nil
		}
	}
	return models.ErrOrderNotFound
}

func (m *mockOrderService) Analytics(ctx context.Context) (*models.Analytics, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.analytics == nil {
		return &models.Analytics{StatusCounts: []models.StatusCount{}, CakeSales: []models.CakeSales{}}, nil
	}
	return m.analytics, nil
}

// mockUserService is a mock implementation of AdminUserService
type mockUserService struct {
	users     []models.User
	deleted   []int
	roleCalls int
	roleErr   error
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *mockUserService) UpdateRole(ctx context.Context, id int, role string) error {
	m.roleCalls++
	r, err := models.ParseRole(role)
	if err != nil {
		return err
	}
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Role = r
			return nil
		}
	}
	return models.ErrUserNotFound
}

func (m *mockUserService) CurrentRole(ctx context.Context, id int) (models.Role, error) {
	if m.roleErr != nil {
		return "", m.roleErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u.Role, nil
		}
	}
	return "", models.ErrUserNotFound
}

func (m *mockUserService) DeleteUser(ctx context.Context, actingUserID, targetUserID int) error {
	if actingUserID == targetUserID {
		return models.ErrSelfDelete
	}
	for i, u := range m.users {
		if u.ID == targetUserID {
			m.users = append(m.users[:i], m.users[i+1:]...)
			m.deleted = append(m.deleted, targetUserID)
			return nil
		}
	}
	return models.ErrUserNotFound
}

// mockPinger is a mock implementation of Pinger
type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}

var errDatabaseDown = errors.New("database down")

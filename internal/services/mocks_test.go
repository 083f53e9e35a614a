package services

import (
	"context"
	"sort"

	"github.com/cakebakery/backend/internal/models"
)

// mockUserRepository is an in-memory implementation of the user repository interfaces
type mockUserRepository struct {
	users  map[int]*models.User
	nextID int
	err    error
}

func newMockUserRepository(users ...*models.User) *mockUserRepository {
	m := &mockUserRepository{users: map[int]*models.User{}, nextID: 1}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID >= m.nextID {
			m.nextID = u.ID + 1
		}
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return models.ErrDuplicateUsername
		}
	}
	user.ID = m.nextID
	m.nextID++
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, models.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	users := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *mockUserRepository) UpdateRole(ctx context.Context, id int, role models.Role) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[id]
	if !ok {
		return models.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.users[id]; !ok {
		return models.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepository) ExistsByRole(ctx context.Context, role models.Role) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// mockCakeRepository is an in-memory implementation of CakeRepository
type mockCakeRepository struct {
	cakes      []models.Cake
	categories []string
	created    []models.Cake
	updated    *models.Cake
	deletedID  int
	err        error
	lastFilter string
}

func (m *mockCakeRepository) GetAll(ctx context.Context, category string) ([]models.Cake, error) {
	m.lastFilter = category
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

func (m *mockCakeRepository) GetCategories(ctx context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCakeRepository) GetByID(ctx context.Context, id int) (*models.Cake, error) {
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

func (m *mockCakeRepository) Create(ctx context.Context, cake *models.Cake) error {
	if m.err != nil {
		return m.err
	}
	cake.ID = len(m.cakes) + len(m.created) + 1
	m.created = append(m.created, *cake)
	return nil
}

func (m *mockCakeRepository) Update(ctx context.Context, cake *models.Cake) error {
	if m.err != nil {
		return m.err
	}
	for _, c := range m.cakes {
		if c.ID == cake.ID {
			updated := *cake
			m.updated = &updated
			return nil
		}
	}
	return models.ErrCakeNotFound
}

func (m *mockCakeRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	for _, c := range m.cakes {
		if c.ID == id {
			m.deletedID = id
			return nil
		}
	}
	return models.ErrCakeNotFound
}

// mockOrderRepository is a mock implementation of the order repository interfaces
type mockOrderRepository struct {
	orders        []models.Order
	ordersByUser  []models.OrderWithUser
	statusCounts  []models.StatusCount
	cakeSales     []models.CakeSales
	createdUserID int
	createdNames  []string
	updatedID     int
	updatedStatus models.OrderStatus
	err           error
	countErr      error
}

func (m *mockOrderRepository) CreateBatch(ctx context.Context, userID int, cakeNames []string) error {
	if m.err != nil {
		return m.err
	}
	m.createdUserID = userID
	m.createdNames = append(m.createdNames, cakeNames...)
	return nil
}

func (m *mockOrderRepository) GetByUserID(ctx context.Context, userID int) ([]models.Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) GetAllWithUsers(ctx context.Context) ([]models.OrderWithUser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ordersByUser, nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	if m.err != nil {
		return m.err
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

func (m *mockOrderRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	if m.countErr != nil {
		return nil, m.countErr
	}
	return m.statusCounts, nil
}

func (m *mockOrderRepository) CountByCakeName(ctx context.Context) ([]models.CakeSales, error) {
	if m.countErr != nil {
		return nil, m.countErr
	}
	return m.cakeSales, nil
}

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cakebakery/backend/internal/models"
	"github.com/cakebakery/backend/internal/session"
	"github.com/cakebakery/backend/internal/views"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCookieName = "bakery_session"

// testApp is the full router wired to mock services and an in-memory session store
type testApp struct {
	router  http.Handler
	store   *session.MemoryStore
	auth    *mockAuthService
	catalog *mockCatalogService
	cart    *mockCartService
	orders  *mockOrderService
	users   *mockUserService
	db      *mockPinger

	renderer *views.Renderer
	logger   *zap.Logger
}

type appOption func(*testApp, *RouterConfig)

func withMetricsAPIKey(key string) appOption {
	return func(_ *testApp, cfg *RouterConfig) { cfg.MetricsAPIKey = key }
}

// withCatalogService replaces the mock catalog behind the shop and admin pages
func withCatalogService(svc AdminCatalogService) appOption {
	return func(a *testApp, cfg *RouterConfig) {
		cfg.Admin = NewAdminHandler(svc, a.orders, a.users, a.renderer, a.logger)
	}
}

func testCakes() []models.Cake {
	return []models.Cake{
		{ID: 1, Name: "Dark Chocolate Cake", Price: decimal.NewFromInt(499), Description: "Rich", Category: "Chocolate"},
		{ID: 2, Name: "Classic Wedding Cake", Price: decimal.NewFromInt(2499), Category: "Wedding"},
	}
}

func newTestApp(t *testing.T, opts ...appOption) *testApp {
	t.Helper()

	logger := zap.NewNop()
	renderer, err := views.New()
	require.NoError(t, err)

	store := session.NewMemoryStore(time.Hour)
	t.Cleanup(func() { store.Close() })
	sessions := session.NewManager(store, session.Options{CookieName: testCookieName, TTL: time.Hour}, logger)

	catalog := &mockCatalogService{cakes: testCakes(), categories: []string{"Chocolate", "Wedding"}}
	app := &testApp{
		store: store,
		auth: newMockAuthService(
			&models.User{ID: 1, Username: "admin", Role: models.RoleAdmin},
			&models.User{ID: 2, Username: "alice", Role: models.RoleUser},
		),
		catalog: catalog,
		cart:    &mockCartService{catalog: catalog},
		orders:  &mockOrderService{},
		users: &mockUserService{users: []models.User{
			{ID: 1, Username: "admin", Role: models.RoleAdmin},
			{ID: 2, Username: "alice", Role: models.RoleUser},
		}},
		db:       &mockPinger{},
		renderer: renderer,
		logger:   logger,
	}

	cfg := RouterConfig{
		Logger:            logger,
		SessionMiddleware: sessions.Middleware,
		AllowedOrigins:    []string{"*"},
		Pages:             NewPagesHandler(renderer, logger),
		Auth:              NewAuthHandler(app.auth, sessions, renderer, logger),
		Shop:              NewShopHandler(catalog, renderer, logger),
		Cart:              NewCartHandler(app.cart, renderer, logger),
		User:              NewUserHandler(app.orders, renderer, logger),
		Admin:             NewAdminHandler(catalog, app.orders, app.users, renderer, logger),
		Roles:             app.users,
		Health:            NewHealthHandler(app.db, logger),
	}
	for _, opt := range opts {
		opt(app, &cfg)
	}
	app.router = NewRouter(cfg)

	return app
}

// loginAs stores a session for the user directly and returns its cookie
func (a *testApp) loginAs(t *testing.T, id int, username string, role models.Role) *http.Cookie {
	t.Helper()
	sid := uuid.NewString()
	require.NoError(t, a.store.Save(context.Background(), sid, &session.Data{UserID: id, Username: username, Role: role}))
	return &http.Cookie{Name: testCookieName, Value: sid}
}

func (a *testApp) request(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// do sends a request, form-encoding form as the body when it is not nil
func (a *testApp) do(method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := a.request(method, target)
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return a.serve(req)
}

func (a *testApp) session(t *testing.T, cookie *http.Cookie) *session.Data {
	t.Helper()
	data, err := a.store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	return data
}

// responseCookie returns the session cookie set by the response, or nil
func responseCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

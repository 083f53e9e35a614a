// Package session keeps per-visitor state (login, cart, flash messages) in a
// server-side store addressed by a random cookie value.
package session

import (
	"context"
	"errors"

	"github.com/cakebakery/backend/internal/models"
)

// ErrNotFound is returned by a Store when the session does not exist or has expired
var ErrNotFound = errors.New("session not found")

// Data is the persisted part of a session
type Data struct {
	UserID   int         `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     models.Role `json:"role,omitempty"`
	Cart     models.Cart `json:"cart"`
	Flashes  []string    `json:"flashes,omitempty"`
}

// Session is the state of one visitor during a request
type Session struct {
	ID   string
	data Data

	isNew     bool
	modified  bool
	destroyed bool
}

func newSession(id string, data *Data, isNew bool) *Session {
	s := &Session{ID: id, isNew: isNew}
	if data != nil {
		s.data = *data
	}
	return s
}

// New returns an unsaved session, mainly for tests
func New(id string) *Session {
	return newSession(id, nil, true)
}

// IsAuthenticated reports whether a user is logged in
func (s *Session) IsAuthenticated() bool {
	return s.data.UserID != 0
}

// IsAdmin reports whether the logged-in user has the admin role
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.data.Role == models.RoleAdmin
}

// UserID returns the logged-in user's ID, or 0
func (s *Session) UserID() int {
	return s.data.UserID
}

// Username returns the logged-in user's name
func (s *Session) Username() string {
	return s.data.Username
}

// Role returns the logged-in user's role
func (s *Session) Role() models.Role {
	return s.data.Role
}

// SetUser records the logged-in user. The cart is kept.
func (s *Session) SetUser(user *models.User) {
	s.data.UserID = user.ID
	s.data.Username = user.Username
	s.data.Role = user.Role
	s.modified = true
}

// SetRole overwrites the logged-in user's role
func (s *Session) SetRole(role models.Role) {
	s.data.Role = role
	s.modified = true
}

// Cart returns the session cart for reading or modification
func (s *Session) Cart() *models.Cart {
	s.modified = true
	return &s.data.Cart
}

// CartCount returns the number of cart lines without marking the session as modified
func (s *Session) CartCount() int {
	return s.data.Cart.Len()
}

// AddFlash queues a one-time message shown on the next rendered page
func (s *Session) AddFlash(msg string) {
	s.data.Flashes = append(s.data.Flashes, msg)
	s.modified = true
}

// PopFlashes returns and clears the queued messages
func (s *Session) PopFlashes() []string {
	if len(s.data.Flashes) == 0 {
		return nil
	}
	flashes := s.data.Flashes
	s.data.Flashes = nil
	s.modified = true
	return flashes
}

// Store persists session data
type Store interface {
	// Method Get loads session data.
	//
	// If the session does not exist or has expired, ErrNotFound is returned.
	Get(ctx context.Context, id string) (*Data, error)
	// Method Save writes session data, resetting its expiry.
	Save(ctx context.Context, id string, data *Data) error
	// Method Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying sess
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached by Manager.Middleware, or nil
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}

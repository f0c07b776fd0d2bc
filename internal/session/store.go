package session

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"sunnyside-shop/internal/domain"
)

// Session is the per-login shopping state. It owns the live cart, the
// delivery details from the checkout form, the in-flight payment intent with
// the snapshot it was priced from, and the order history. One request
// handler mutates a session at a time; the store only guards the token map.
type Session struct {
	Token    string
	UserID   string
	Username string
	Role     string

	Cart     []domain.CartLine
	Delivery domain.DeliveryDetails

	// PendingPayment and PendingSnapshot live from checkout start until the
	// payment reaches a terminal state. An abandoned checkout leaves them
	// behind and they expire with the session; no stock is touched.
	PendingPayment  *domain.PaymentIntent
	PendingSnapshot *domain.CartSnapshot

	Orders []domain.Order

	ExpiresAt time.Time
}

// ClearPending drops the in-flight payment state after a terminal outcome.
func (s *Session) ClearPending() {
	s.PendingPayment = nil
	s.PendingSnapshot = nil
}

// Store keeps sessions in memory keyed by an opaque bearer token. Expired
// sessions are dropped on read.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Issue creates a session for the given user and returns it with a fresh
// token.
func (st *Store) Issue(userID, username, role string) (*Session, error) {
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	sess := &Session{
		Token:     token,
		UserID:    userID,
		Username:  username,
		Role:      role,
		ExpiresAt: time.Now().Add(st.ttl),
	}
	st.mu.Lock()
	st.sessions[token] = sess
	st.mu.Unlock()
	return sess, nil
}

// Get resolves a token to its session, evicting it when expired.
func (st *Store) Get(token string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[token]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(sess.ExpiresAt) {
		st.mu.Lock()
		delete(st.sessions, token)
		st.mu.Unlock()
		return nil, false
	}
	return sess, true
}

// Revoke drops a session, e.g. on logout.
func (st *Store) Revoke(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

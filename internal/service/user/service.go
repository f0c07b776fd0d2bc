package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sunnyside-shop/internal/domain"
	userrepo "sunnyside-shop/internal/repository/user"
	"sunnyside-shop/internal/session"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when signup reuses an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// Service handles signup/login and session issuance.
type Service struct {
	repo        userrepo.Repository
	sessions    *session.Store
	passwordMin int
}

func New(repo userrepo.Repository, sessions *session.Store) *Service {
	return &Service{
		repo:        repo,
		sessions:    sessions,
		passwordMin: 6,
	}
}

// SignupInput captures the registration form.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
	Role     string `json:"role"`
}

// Signup registers a new user. Only the seeded admin may exist with the
// admin role; signup always creates plain shoppers regardless of the
// submitted role field.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, errors.New("email required")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, errors.New("username required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, fmt.Errorf("password should be at least %d characters", s.passwordMin)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userrepo.CreateUserInput{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Address:      strings.TrimSpace(in.Address),
		Contact:      strings.TrimSpace(in.Contact),
		Role:         domain.RoleUser,
	})
}

// Login verifies credentials and issues a session.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.sessions.Issue(u.ID, u.Username, u.Role)
}

// Logout revokes the session token.
func (s *Service) Logout(token string) {
	s.sessions.Revoke(token)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fincalc/domain"
	"fincalc/repository"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

type AuthService struct {
	users repository.UserRepository
	cost  int
	now   func() time.Time
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{
		users: users,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
}

// Register creates an account. The email is normalised to lower case.
func (s *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, domain.Invalid("password", "must be at least %d characters", MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return domain.User{}, domain.Invalid("password", "must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        addr,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.User{}, err
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate checks the credentials. Unknown emails and wrong passwords
// both report ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	user, err := s.users.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) User(ctx context.Context, id string) (domain.User, error) {
	if id == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	return s.users.GetUserByID(ctx, id)
}

func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", domain.Invalid("email", "must be a valid email address")
	}
	return strings.ToLower(addr.Address), nil
}

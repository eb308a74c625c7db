package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPendingApproval is returned when the password matches but the account
	// has not been approved by an administrator yet.
	ErrPendingApproval = errors.New("account pending approval")
	// ErrUserAlreadyExists is returned when registering with a taken username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound indicates the referenced account does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput flags request payloads rejected by validation.
	ErrInvalidInput = errors.New("invalid input")
)

// UserService owns the account lifecycle: registration, the pending/approved
// transition, login, and admin moderation of accounts.
type UserService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListPending(ctx context.Context) ([]domain.User, error)
	ListApproved(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
}

func NewUserService(users repository.UserRepository, tokens *auth.Tokens) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
	}
}

// Register creates a new account in the pending state. No route ever sets the
// admin flag; admins are provisioned directly in storage.
func (s *userService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Approved:     false,
		IsAdmin:      false,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "already exists") {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

// Login verifies credentials and issues a session token embedding the stored
// admin flag. Unknown usernames and wrong passwords are indistinguishable to
// the caller; a pending account is reported as such only after the password
// checked out.
func (s *userService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.Approved {
		return "", nil, ErrPendingApproval
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	return token, sanitizeUser(user), nil
}

// Approve moves a pending account to approved. Approving an already approved
// account is a no-op.
func (s *userService) Approve(ctx context.Context, id int64) error {
	if err := s.users.Approve(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// Reject removes a registration request outright. There is no tombstone; the
// username becomes available again.
func (s *userService) Reject(ctx context.Context, id int64) error {
	return s.Delete(ctx, id)
}

// Delete removes an account. Owned tasks go with it via the cascade on the
// tasks table.
func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) ListPending(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

func (s *userService) ListApproved(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

// sanitizeUser strips the password hash before a user leaves the service.
func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Approved:  user.Approved,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func sanitizeUsers(users []domain.User) []domain.User {
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = *sanitizeUser(&users[i])
	}
	return out
}

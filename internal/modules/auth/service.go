package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fileshare/internal/domain"
	"fileshare/internal/pkg/logger"
)

type jwtService interface {
	GenerateToken(userID int64, username string) (string, error)
}

// Service contains all business logic for accounts and token issuance.
type Service struct {
	users UserRepositoryInterface
	jwt   jwtService
}

func NewService(users UserRepositoryInterface, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Register creates a non-admin account. Usernames are unique exactly as
// stored; no case folding.
func (s *Service) Register(ctx context.Context, username, password string) (*domain.User, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// two registrations racing past the exists check land on the
		// unique index; report the loser the same way
		if isDuplicateKey(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// BootstrapAdmin creates the initial admin account if no admin exists yet.
// Idempotent; meant to run once at service startup.
func (s *Service) BootstrapAdmin(ctx context.Context, username, password string) error {
	exists, err := s.users.ExistsAdmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return err
	}

	logger.L().Info("bootstrapped admin user")
	return nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.PasswordHash = ""
	}
	return users, nil
}

// isDuplicateKey matches a unique-index violation across the supported
// drivers: Postgres reports SQLSTATE 23505, SQLite only a message.
func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *Service) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

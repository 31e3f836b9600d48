package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fileshare/internal/database"
	"fileshare/internal/domain"
	"fileshare/internal/repository"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsAdmin(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ListAll(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// Mock JWT service
type mockJWTService struct {
	mock.Mock
}

func (m *mockJWTService) GenerateToken(userID int64, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

func TestService_Register_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(userRepo, jwtSvc)

	user, err := service.Register(context.Background(), "alice", "securepass123")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)
	assert.Empty(t, user.PasswordHash)

	userRepo.AssertExpectations(t)
}

func TestService_Register_UsernameTaken(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

	service := NewService(userRepo, jwtSvc)

	_, err := service.Register(context.Background(), "alice", "securepass123")

	assert.ErrorIs(t, err, ErrUsernameTaken)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Register_HashesPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	var stored string
	userRepo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.User).PasswordHash
	}).Return(nil)

	service := NewService(userRepo, jwtSvc)

	_, err := service.Register(context.Background(), "alice", "securepass123")
	assert.NoError(t, err)

	assert.NotEqual(t, "securepass123", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("securepass123")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("securepass12X")))
}

// racingUserRepo reports every username as free, so Register always
// reaches the insert and the unique index has to settle the race.
type racingUserRepo struct {
	*repository.UserRepository
}

func (racingUserRepo) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

func TestService_Register_DuplicateRaceHitsUniqueIndex(t *testing.T) {
	db, err := database.Connect(fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	service := NewService(racingUserRepo{repository.NewUserRepository(db)}, new(mockJWTService))

	if _, err := service.Register(context.Background(), "alice", "securepass123"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err = service.Register(context.Background(), "alice", "otherpass456")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestService_Login_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)
	jwtSvc.On("GenerateToken", int64(7), "alice").Return("fake-jwt-token", nil)

	service := NewService(userRepo, jwtSvc)

	user, token, err := service.Login(context.Background(), "alice", "correct-horse")

	assert.NoError(t, err)
	assert.Equal(t, "fake-jwt-token", token)
	assert.Equal(t, "alice", user.Username)
	jwtSvc.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(&domain.User{
		ID:           7,
		Username:     "alice",
		PasswordHash: string(hash),
	}, nil)

	service := NewService(userRepo, jwtSvc)

	// one character off must fail
	_, _, err := service.Login(context.Background(), "alice", "correct-hors3")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	jwtSvc.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("GetByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(userRepo, jwtSvc)

	_, _, err := service.Login(context.Background(), "nobody", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_BootstrapAdmin_CreatesWhenAbsent(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsAdmin", mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.IsAdmin && u.Username == "admin"
	})).Return(nil)

	service := NewService(userRepo, jwtSvc)

	err := service.BootstrapAdmin(context.Background(), "admin", "admin_password")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestService_BootstrapAdmin_NoopWhenAdminExists(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ExistsAdmin", mock.Anything).Return(true, nil)

	service := NewService(userRepo, jwtSvc)

	err := service.BootstrapAdmin(context.Background(), "admin", "admin_password")

	assert.NoError(t, err)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ListUsers_StripsHashes(t *testing.T) {
	userRepo := new(mockUserRepo)
	jwtSvc := new(mockJWTService)

	userRepo.On("ListAll", mock.Anything).Return([]*domain.User{
		{ID: 1, Username: "admin", PasswordHash: "x", IsAdmin: true},
		{ID: 2, Username: "alice", PasswordHash: "y"},
	}, nil)

	service := NewService(userRepo, jwtSvc)

	users, err := service.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"artmarket/internal/entity"
	"artmarket/pkg/jwt"
	"artmarket/pkg/logger"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = "new-user"
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *mockUserRepo) List() ([]*entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func newAuthUseCaseForTest(userRepo *mockUserRepo) AuthUseCase {
	return NewAuthUseCase(userRepo, jwt.NewService("test-secret"), new(mockStorage), logger.New())
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", "ann@example.com").Return(nil, entity.ErrNotFound)
	userRepo.On("GetByUsername", "ann").Return(nil, entity.ErrNotFound)
	userRepo.On("Create", mock.Anything).Return(nil)

	uc := newAuthUseCaseForTest(userRepo)
	user, token, err := uc.Register("ann@example.com", "ann", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", "ann@example.com").Return(&entity.User{ID: "u1"}, nil)

	uc := newAuthUseCaseForTest(userRepo)
	_, _, err := uc.Register("ann@example.com", "ann", "secret123")

	assert.ErrorIs(t, err, entity.ErrConflict)
}

func TestRegister_ShortPassword(t *testing.T) {
	uc := newAuthUseCaseForTest(new(mockUserRepo))
	_, _, err := uc.Register("ann@example.com", "ann", "abc")
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", "ann@example.com").Return(&entity.User{
		ID: "u1", Email: "ann@example.com", Password: string(hash), Role: entity.RoleUser, IsActive: true,
	}, nil)

	uc := newAuthUseCaseForTest(userRepo)
	user, token, err := uc.Login("ann@example.com", "secret123")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "u1", user.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", "ann@example.com").Return(&entity.User{
		ID: "u1", Password: string(hash), IsActive: true,
	}, nil)

	uc := newAuthUseCaseForTest(userRepo)
	_, _, err := uc.Login("ann@example.com", "wrong")

	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByEmail", "ghost@example.com").Return(nil, entity.ErrNotFound)

	uc := newAuthUseCaseForTest(userRepo)
	_, _, err := uc.Login("ghost@example.com", "whatever")

	assert.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestResetPassword_Success(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", "u1").Return(&entity.User{ID: "u1", Username: "ann"}, nil)
	userRepo.On("Update", mock.MatchedBy(func(u *entity.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("fresh-secret")) == nil
	})).Return(nil)

	uc := newAuthUseCaseForTest(userRepo)
	assert.NoError(t, uc.ResetPassword("u1", "fresh-secret"))
	userRepo.AssertExpectations(t)
}

func TestResetPassword_ShortPassword(t *testing.T) {
	userRepo := new(mockUserRepo)

	uc := newAuthUseCaseForTest(userRepo)
	assert.ErrorIs(t, uc.ResetPassword("u1", "abc"), entity.ErrValidation)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestResetPassword_UnknownUser(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", "missing").Return(nil, entity.ErrNotFound)

	uc := newAuthUseCaseForTest(userRepo)
	assert.ErrorIs(t, uc.ResetPassword("missing", "fresh-secret"), entity.ErrNotFound)
}

func TestUpdateProfile_TakenUsername(t *testing.T) {
	userRepo := new(mockUserRepo)
	userRepo.On("GetByID", "u1").Return(&entity.User{ID: "u1", Username: "ann"}, nil)
	userRepo.On("GetByUsername", "bob").Return(&entity.User{ID: "u2"}, nil)

	uc := newAuthUseCaseForTest(userRepo)
	newName := "bob"
	_, err := uc.UpdateProfile("u1", nil, &newName)

	assert.ErrorIs(t, err, entity.ErrConflict)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "localehub/internal/errors"
	"localehub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockIssuer is a mock implementation of auth.IssuerInterface.
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockIssuer) Authenticate(ctx context.Context, token string) (uint, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockIssuer) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			userName: "Shayan",
			email:    "shayan@example.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "shayan@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already registered",
			userName: "Shayan",
			email:    "shayan@example.com",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "shayan@example.com").Return(&model.User{Email: "shayan@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "email is case-normalized before lookup",
			userName: "Shayan",
			email:    "  Shayan@Example.COM ",
			password: "secret123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "shayan@example.com").Return(&model.User{Email: "shayan@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, new(MockIssuer))
			user, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, "shayan@example.com", user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(tt.password)))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcryptCost)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockIssuer)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "shayan@example.com",
			password: "secret123",
			setupMock: func(mRepo *MockUserRepository, mIssuer *MockIssuer) {
				mRepo.On("FindByEmail", mock.Anything, "shayan@example.com").Return(&model.User{
					ID:           7,
					Email:        "shayan@example.com",
					PasswordHash: string(hash),
				}, nil)
				mIssuer.On("Issue", mock.Anything, uint(7)).Return("opaque-token", nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret123",
			setupMock: func(mRepo *MockUserRepository, mIssuer *MockIssuer) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "shayan@example.com",
			password: "not-the-password",
			setupMock: func(mRepo *MockUserRepository, mIssuer *MockIssuer) {
				mRepo.On("FindByEmail", mock.Anything, "shayan@example.com").Return(&model.User{
					ID:           7,
					Email:        "shayan@example.com",
					PasswordHash: string(hash),
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockIssuer := new(MockIssuer)
			tt.setupMock(mockRepo, mockIssuer)

			svc := NewAuthService(mockRepo, mockIssuer)
			token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "opaque-token", token)
			}

			mockRepo.AssertExpectations(t)
			mockIssuer.AssertExpectations(t)
		})
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_Login_EnumerationResistance(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcryptCost)

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "known@example.com").Return(&model.User{
		ID:           1,
		Email:        "known@example.com",
		PasswordHash: string(hash),
	}, nil)
	mockRepo.On("FindByEmail", mock.Anything, "unknown@example.com").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(mockRepo, new(MockIssuer))

	_, errWrongPassword := svc.Login(context.Background(), "known@example.com", "bad-password")
	_, errUnknownEmail := svc.Login(context.Background(), "unknown@example.com", "bad-password")

	assert.Equal(t, errWrongPassword, errUnknownEmail)
}

func TestAuthService_Logout(t *testing.T) {
	mockIssuer := new(MockIssuer)
	mockIssuer.On("Revoke", mock.Anything, "opaque-token").Return(nil)

	svc := NewAuthService(new(MockUserRepository), mockIssuer)
	assert.NoError(t, svc.Logout(context.Background(), "opaque-token"))
	mockIssuer.AssertExpectations(t)
}

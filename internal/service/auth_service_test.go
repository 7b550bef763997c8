package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worklink/internal/auth"
	"worklink/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		role          model.Role
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "registers a customer with its profile",
			username: "alice",
			role:     model.RoleCustomer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Profile")).Return(nil)
			},
		},
		{
			name:     "registers an executor with its profile",
			username: "bob",
			role:     model.RoleExecutor,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Profile")).Return(nil)
			},
		},
		{
			name:     "rejects a taken username",
			username: "alice",
			role:     model.RoleCustomer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(testCustomer(1), nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
		{
			name:          "rejects a role outside the closed set",
			username:      "mallory",
			role:          model.Role("admin"),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: ErrInvalidRole,
		},
		{
			name:     "maps a duplicate key from the racing insert",
			username: "alice",
			role:     model.RoleCustomer,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateWithProfile", mock.Anything, mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Profile")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			tt.setupMock(mockUser)

			svc := NewAuthService(mockUser, auth.NewJWTService("test-secret"), new(MockTokenStore))
			user, err := svc.Register(context.Background(), tt.username, tt.username+"@example.com", "password123", tt.role)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotNil(t, user.Profile)
				assert.Equal(t, tt.role, user.Profile.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
			}

			mockUser.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptCost)
	assert.NoError(t, err)

	stored := testCustomer(1)
	stored.Username = "user1"
	stored.PasswordHash = string(hash)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "valid credentials yield a token pair",
			username: "user1",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mStore *MockTokenStore) {
				mUser.On("FindByUsername", mock.Anything, "user1").Return(stored, nil)
				mStore.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"), uint(1), "user1", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			username: "user1",
			password: "nope",
			setupMock: func(mUser *MockUserRepository, mStore *MockTokenStore) {
				mUser.On("FindByUsername", mock.Anything, "user1").Return(stored, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown username",
			username: "ghost",
			password: "password123",
			setupMock: func(mUser *MockUserRepository, mStore *MockTokenStore) {
				mUser.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockStore := new(MockTokenStore)
			tt.setupMock(mockUser, mockStore)

			svc := NewAuthService(mockUser, auth.NewJWTService("test-secret"), mockStore)
			access, refresh, user, err := svc.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, access)
				assert.Empty(t, refresh)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, access)
				assert.NotEmpty(t, refresh)
				assert.Equal(t, uint(1), user.ID)
			}

			mockUser.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "user1")
	assert.NoError(t, err)

	t.Run("valid refresh token yields a new access token", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "user1", nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)
		access, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		mockStore.AssertExpectations(t)
	})

	t.Run("token missing from the store is rejected", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(0), "", assert.AnError)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)
		_, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore))
		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("store identity mismatch is rejected", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(2), "user1", nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)
		_, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "user1")
	assert.NoError(t, err)

	mockStore := new(MockTokenStore)
	mockStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

	svc := NewAuthService(new(MockUserRepository), jwtService, mockStore)
	assert.NoError(t, svc.Logout(context.Background(), refreshToken))
	mockStore.AssertExpectations(t)
}

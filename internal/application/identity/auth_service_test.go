package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erp/accounting/internal/domain/identity"
	"github.com/erp/accounting/internal/domain/shared"
	"github.com/erp/accounting/internal/infrastructure/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(sub auth.Subject) (*auth.AccessToken, error) {
	args := m.Called(sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.AccessToken), args.Error(1)
}

func existingUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("ketoan", "secret123", "Tran Thi B", identity.RoleAccountant)
	require.NoError(t, err)
	return u
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "admin").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "admin" && u.Role == identity.RoleAdmin && u.VerifyPassword("secret123")
		})).Return(nil)
		svc := NewAuthService(repo, new(MockTokenIssuer), auth.NewInMemoryTokenBlacklist(), nil)

		resp, err := svc.Register(ctx, RegisterRequest{Username: " admin ", Password: "secret123", Role: "ADMIN"})
		require.NoError(t, err)
		assert.Equal(t, "admin", resp.Username)
		assert.Equal(t, "ADMIN", resp.Role)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "admin").Return(true, nil)
		svc := NewAuthService(repo, new(MockTokenIssuer), auth.NewInMemoryTokenBlacklist(), nil)

		_, err := svc.Register(ctx, RegisterRequest{Username: "admin", Password: "secret123"})
		assert.ErrorIs(t, err, shared.ErrConflict)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("ExistsByUsername", ctx, "admin").Return(false, nil)
		svc := NewAuthService(repo, new(MockTokenIssuer), auth.NewInMemoryTokenBlacklist(), nil)

		_, err := svc.Register(ctx, RegisterRequest{Username: "admin", Password: "123"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues token and records login", func(t *testing.T) {
		user := existingUser(t)
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "ketoan").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)
		issuer := new(MockTokenIssuer)
		expires := time.Now().Add(time.Hour)
		issuer.On("Issue", auth.Subject{UserID: user.ID, Username: "ketoan", Role: "ACCOUNTANT"}).
			Return(&auth.AccessToken{Token: "signed", TokenType: "Bearer", ExpiresAt: expires}, nil)
		svc := NewAuthService(repo, issuer, auth.NewInMemoryTokenBlacklist(), nil)

		resp, err := svc.Login(ctx, LoginRequest{Username: "ketoan", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "signed", resp.AccessToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.NotNil(t, resp.User.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "ketoan").Return(existingUser(t), nil)
		issuer := new(MockTokenIssuer)
		svc := NewAuthService(repo, issuer, auth.NewInMemoryTokenBlacklist(), nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "ketoan", Password: "wrong-pass"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		issuer.AssertNotCalled(t, "Issue", mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "ghost").Return(nil, shared.NewNotFound("user ghost not found"))
		svc := NewAuthService(repo, new(MockTokenIssuer), auth.NewInMemoryTokenBlacklist(), nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage failure is not masked", func(t *testing.T) {
		boom := errors.New("db down")
		repo := new(MockUserRepository)
		repo.On("FindByUsername", ctx, "ketoan").Return(nil, boom)
		svc := NewAuthService(repo, new(MockTokenIssuer), auth.NewInMemoryTokenBlacklist(), nil)

		_, err := svc.Login(ctx, LoginRequest{Username: "ketoan", Password: "secret123"})
		assert.ErrorIs(t, err, boom)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	user := existingUser(t)
	repo := new(MockUserRepository)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	svc := NewAuthService(repo, new(MockTokenIssuer), auth.NewInMemoryTokenBlacklist(), nil)

	resp, err := svc.Me(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "ketoan", resp.Username)

	_, err = svc.Me(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	blacklist := auth.NewInMemoryTokenBlacklist()
	svc := NewAuthService(new(MockUserRepository), new(MockTokenIssuer), blacklist, nil)

	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti-42", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Username:         "ketoan",
	}
	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := blacklist.IsRevoked(ctx, "jti-42")
	require.NoError(t, err)
	assert.True(t, revoked)
}

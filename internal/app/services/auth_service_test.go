package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcetin/courseflow/internal/app/models"
	"github.com/mcetin/courseflow/internal/app/models/dto"
	"github.com/mcetin/courseflow/internal/app/services"
	"github.com/mcetin/courseflow/internal/pkg/apperrors"
	"github.com/mcetin/courseflow/internal/pkg/auth"
)

// fakeUserRepo is an in-memory stand-in for the pgx-backed user repository
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID: make(map[int64]*models.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}

	f.nextID++
	stored := *user
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.byID[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) delete(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

func newTestAuthService(repo *fakeUserRepo, ttl time.Duration) *services.AuthService {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenExp: ttl,
		TokenIssuer:    "courseflow.test",
	})
	return services.NewAuthService(repo, jwtService, zerolog.Nop())
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "alice@x.com", resp.Email)

	// Stored password is a digest, not the plaintext
	stored, err := repo.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123secret", stored.Password)
	assert.True(t, auth.CheckPassword(stored.Password, "pw123secret"))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "otherpw456"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "not-an-email", Password: "pw123secret"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "short"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int(time.Hour.Seconds()), resp.ExpiresIn)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	// Unknown email and wrong password fail with the same error so the
	// two cases are indistinguishable to a caller.
	_, unknownErr := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@x.com", Password: "pw123secret"})
	_, wrongErr := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "wrong-password"})

	assert.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)
}

func TestAuthService_CurrentUser_DeletedPrincipal(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "alice@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	// The token stays cryptographically valid but its subject is gone
	repo.delete(reg.UserID)

	_, err = svc.CurrentUser(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAuthService_CurrentUser_BadTokens(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo, time.Hour)
	ctx := context.Background()

	_, err := svc.CurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, apperrors.ErrMalformedToken)

	expiredSvc := newTestAuthService(repo, -time.Minute)
	_, err = expiredSvc.Register(ctx, &dto.RegisterRequest{Email: "bob@x.com", Password: "pw123secret"})
	require.NoError(t, err)
	resp, err := expiredSvc.Login(ctx, &dto.LoginRequest{Email: "bob@x.com", Password: "pw123secret"})
	require.NoError(t, err)

	_, err = expiredSvc.CurrentUser(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

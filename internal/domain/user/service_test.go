package user_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/user"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
)

// fakeBiometric is a scriptable device capability.
type fakeBiometric struct {
	available bool
	authErr   error
}

func (f *fakeBiometric) IsAvailable(ctx context.Context) bool { return f.available }

func (f *fakeBiometric) Authenticate(ctx context.Context) error { return f.authErr }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage.WriteTimeout = time.Second
	cfg.Security.BcryptCost = bcrypt.MinCost
	return cfg
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newUserService(t *testing.T, store storage.Store, biometric user.Biometric) *user.Service {
	t.Helper()
	svc := user.NewService(store, testLogger(), testConfig(), biometric)
	select {
	case <-svc.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("user service never finished loading")
	}
	return svc
}

func register(t *testing.T, svc *user.Service) *user.User {
	t.Helper()
	registered, err := svc.SignUp(context.Background(), &user.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return registered
}

func TestSignUp(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)

	registered := register(t, svc)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "alice@example.com", registered.Email)
	assert.Empty(t, registered.PasswordHash)

	// Sign-up activates the session.
	current := svc.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, registered.ID, current.ID)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	register(t, svc)

	_, err := svc.SignUp(context.Background(), &user.RegisterRequest{
		Name:     "Other",
		Email:    "ALICE@example.com",
		Password: "secret2",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestSignInAndOut(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	registered := register(t, svc)
	ctx := context.Background()

	svc.SignOut(ctx)
	assert.Nil(t, svc.CurrentUser())

	signedIn, err := svc.SignIn(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, signedIn.ID)
	assert.Empty(t, signedIn.PasswordHash)
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	register(t, svc)

	_, err := svc.SignIn(context.Background(), "alice@example.com", "wrong")
	require.EqualError(t, err, "invalid email or password")

	_, err = svc.SignIn(context.Background(), "nobody@example.com", "secret1")
	require.EqualError(t, err, "invalid email or password")
}

func TestDemoUserSignsInWithoutRegistration(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)

	signedIn, err := svc.SignIn(context.Background(), "demo@food.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo-user", signedIn.ID)
	assert.Equal(t, "Demo User", signedIn.Name)

	_, err = svc.SignIn(context.Background(), "demo@food.com", "nope")
	require.Error(t, err)
}

func TestBiometricSignIn(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	// A prior session saves the user under the session key.
	first := newUserService(t, store, nil)
	registered := register(t, first)

	svc := newUserService(t, store, &fakeBiometric{available: true})
	restored, err := svc.BiometricSignIn(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, restored.ID)
}

func TestBiometricSignInUnavailable(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), &fakeBiometric{available: false})
	_, err := svc.BiometricSignIn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	// No capability wired at all behaves the same.
	svc = newUserService(t, storage.NewMemoryStore(), nil)
	_, err = svc.BiometricSignIn(context.Background())
	require.Error(t, err)
}

func TestBiometricSignInRejected(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), &fakeBiometric{
		available: true,
		authErr:   errors.New("face not recognized"),
	})
	_, err := svc.BiometricSignIn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "biometric authentication failed")
}

func TestBiometricSignInNoSavedSession(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), &fakeBiometric{available: true})
	_, err := svc.BiometricSignIn(context.Background())
	require.EqualError(t, err, "no saved session to restore")
}

func TestUpdateProfile(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	register(t, svc)

	updated, err := svc.UpdateProfile(context.Background(), &user.UpdateProfileRequest{
		Phone:   "5551234",
		Address: "1 Main St",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", updated.Name)
	assert.Equal(t, "5551234", updated.Phone)
	assert.Equal(t, "1 Main St", updated.Address)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	_, err := svc.UpdateProfile(context.Background(), &user.UpdateProfileRequest{Name: "X"})
	require.EqualError(t, err, "no user is signed in")
}

func TestDeleteAccount(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	register(t, svc)
	ctx := context.Background()

	require.NoError(t, svc.DeleteAccount(ctx))
	assert.Nil(t, svc.CurrentUser())

	// The account is gone from the directory.
	_, err := svc.SignIn(ctx, "alice@example.com", "secret1")
	require.Error(t, err)
}

func TestSessionSurvivesRestart(t *testing.T) {
	store := storage.NewMemoryStore()

	first := newUserService(t, store, nil)
	registered := register(t, first)

	second := newUserService(t, store, nil)
	current := second.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, registered.ID, current.ID)

	// The directory survives too.
	_, err := second.SignIn(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
}

func TestGetByID(t *testing.T) {
	svc := newUserService(t, storage.NewMemoryStore(), nil)
	registered := register(t, svc)

	found := svc.GetByID(registered.ID)
	require.NotNil(t, found)
	assert.Equal(t, registered.Email, found.Email)
	assert.Empty(t, found.PasswordHash)

	assert.Nil(t, svc.GetByID("missing"))
}

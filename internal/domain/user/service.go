// internal/domain/user/service.go
package user

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/infrastructure/storage"
	"github.com/your-org/foodorder-backend/internal/pkg/auth"
)

// Demo credentials accepted without prior registration, mirroring the
// seeded demo account of the mobile app.
const (
	demoEmail    = "demo@food.com"
	demoPassword = "demo123"
)

// Biometric is the device authentication capability. It lives outside this
// repository; the directory only consumes it to re-activate a saved session.
type Biometric interface {
	IsAvailable(ctx context.Context) bool
	Authenticate(ctx context.Context) error
}

// Service is the mock user directory plus the active local session. The
// directory is persisted under one key, the active session under another.
type Service struct {
	store        storage.Store
	logger       *logrus.Logger
	passwords    *auth.PasswordManager
	biometric    Biometric
	writeTimeout time.Duration

	mu      sync.Mutex
	users   []User
	current *User
	loading bool
	ready   chan struct{}
}

// NewService creates the user directory and starts the initial load from
// storage. biometric may be nil when the device capability is absent.
func NewService(store storage.Store, logger *logrus.Logger, cfg *config.Config, biometric Biometric) *Service {
	s := &Service{
		store:        store,
		logger:       logger,
		passwords:    auth.NewPasswordManager(cfg),
		biometric:    biometric,
		writeTimeout: cfg.Storage.WriteTimeout,
		loading:      true,
		ready:        make(chan struct{}),
	}

	go s.loadFromStorage(context.Background())

	return s
}

// Ready is closed once the initial load from storage has completed.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// IsLoading reports whether the initial load is still in flight.
func (s *Service) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SignUp registers a new account and makes it the active session.
func (s *Service) SignUp(ctx context.Context, req *RegisterRequest) (*User, error) {
	email := NormalizeEmail(req.Email)

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Email == email {
			return nil, fmt.Errorf("an account with this email already exists")
		}
	}

	newUser := User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	s.users = append(s.users, newUser)
	s.current = &newUser
	s.persistDirectoryLocked(ctx)
	s.persistSessionLocked(ctx)

	public := newUser.Public()
	return &public, nil
}

// SignIn authenticates against the directory and makes the matching account
// the active session. The demo credentials sign in without registration.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	email = NormalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if email == demoEmail && password == demoPassword {
		demo := s.demoUserLocked()
		s.current = demo
		s.persistSessionLocked(ctx)
		public := demo.Public()
		return &public, nil
	}

	for i := range s.users {
		if s.users[i].Email != email {
			continue
		}
		if err := s.passwords.VerifyPassword(password, s.users[i].PasswordHash); err != nil {
			return nil, fmt.Errorf("invalid email or password")
		}
		s.current = &s.users[i]
		s.persistSessionLocked(ctx)
		public := s.users[i].Public()
		return &public, nil
	}

	return nil, fmt.Errorf("invalid email or password")
}

// BiometricSignIn re-activates the saved session after the device capability
// approves. It fails when no capability is wired, the device reports it
// unavailable, or no session was saved.
func (s *Service) BiometricSignIn(ctx context.Context) (*User, error) {
	if s.biometric == nil || !s.biometric.IsAvailable(ctx) {
		return nil, fmt.Errorf("biometric authentication is not available on this device")
	}
	if err := s.biometric.Authenticate(ctx); err != nil {
		return nil, fmt.Errorf("biometric authentication failed: %w", err)
	}

	data, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, fmt.Errorf("no saved session to restore")
	}

	var saved User
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, fmt.Errorf("no saved session to restore")
	}

	s.mu.Lock()
	s.current = &saved
	s.mu.Unlock()

	public := saved.Public()
	return &public, nil
}

// SignOut clears the active session.
func (s *Service) SignOut(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		s.logger.WithError(err).Error("Failed to clear session in storage")
	}
}

// CurrentUser returns the active session's user, or nil when signed out.
func (s *Service) CurrentUser() *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	public := s.current.Public()
	return &public
}

// GetByID returns the directory entry with the given id, or nil.
func (s *Service) GetByID(id string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && s.current.ID == id {
		public := s.current.Public()
		return &public
	}
	for i := range s.users {
		if s.users[i].ID == id {
			public := s.users[i].Public()
			return &public
		}
	}
	return nil
}

// UpdateProfile applies the editable fields to the active session's account.
func (s *Service) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, fmt.Errorf("no user is signed in")
	}

	if req.Name != "" {
		s.current.Name = req.Name
	}
	if req.Phone != "" {
		s.current.Phone = req.Phone
	}
	if req.Address != "" {
		s.current.Address = req.Address
	}

	for i := range s.users {
		if s.users[i].ID == s.current.ID {
			s.users[i] = *s.current
			break
		}
	}

	s.persistDirectoryLocked(ctx)
	s.persistSessionLocked(ctx)

	public := s.current.Public()
	return &public, nil
}

// DeleteAccount removes the active session's account from the directory and
// signs it out.
func (s *Service) DeleteAccount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return fmt.Errorf("no user is signed in")
	}

	for i := range s.users {
		if s.users[i].ID == s.current.ID {
			s.users = append(s.users[:i], s.users[i+1:]...)
			break
		}
	}

	s.current = nil
	s.persistDirectoryLocked(ctx)
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		s.logger.WithError(err).Error("Failed to clear session in storage")
	}
	return nil
}

// demoUserLocked finds or creates the demo directory entry.
func (s *Service) demoUserLocked() *User {
	for i := range s.users {
		if s.users[i].Email == demoEmail {
			return &s.users[i]
		}
	}
	demo := User{
		ID:        "demo-user",
		Name:      "Demo User",
		Email:     demoEmail,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, demo)
	return &s.users[len(s.users)-1]
}

func (s *Service) persistDirectoryLocked(ctx context.Context) {
	data, err := json.Marshal(s.users)
	if err != nil {
		s.logger.WithError(err).Error("Failed to serialize user directory")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.store.Set(ctx, storage.KeyDirectory, data); err != nil {
		s.logger.WithError(err).Error("Failed to save user directory to storage")
	}
}

func (s *Service) persistSessionLocked(ctx context.Context) {
	data, err := json.Marshal(s.current)
	if err != nil {
		s.logger.WithError(err).Error("Failed to serialize session")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if err := s.store.Set(ctx, storage.KeyUser, data); err != nil {
		s.logger.WithError(err).Error("Failed to save session to storage")
	}
}

func (s *Service) loadFromStorage(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		close(s.ready)
	}()

	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()

	if data, err := s.store.Get(ctx, storage.KeyDirectory); err == nil {
		var users []User
		if err := json.Unmarshal(data, &users); err != nil {
			s.logger.WithError(err).Error("Malformed user directory in storage, starting empty")
		} else {
			s.mu.Lock()
			s.users = users
			s.mu.Unlock()
		}
	} else if err != storage.ErrNotFound {
		s.logger.WithError(err).Error("Failed to load user directory from storage")
	}

	if data, err := s.store.Get(ctx, storage.KeyUser); err == nil {
		var current User
		if err := json.Unmarshal(data, &current); err != nil {
			s.logger.WithError(err).Error("Malformed session in storage, starting signed out")
		} else {
			s.mu.Lock()
			s.current = &current
			s.mu.Unlock()
		}
	} else if err != storage.ErrNotFound {
		s.logger.WithError(err).Error("Failed to load session from storage")
	}
}

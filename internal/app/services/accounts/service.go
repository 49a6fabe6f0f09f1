// Package accounts enforces registration and authentication rules over the
// account store.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/micropost/micropost/internal/app/domain/account"
	"github.com/micropost/micropost/internal/app/storage"
	"github.com/micropost/micropost/pkg/logger"
)

const minPasswordLength = 4

var (
	// ErrUsernameTaken reports a registration against an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials reports a failed login: unknown username or
	// password mismatch, deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service manages account registration and authentication.
type Service struct {
	store storage.AccountStore
	log   *logger.Logger
}

// New constructs an account service.
func New(store storage.AccountStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("accounts")
	}
	return &Service{store: store, log: log}
}

// Register creates a new account. Rules are checked in order and the first
// failing one wins: username non-blank, password at least four characters,
// username not already registered.
func (s *Service) Register(ctx context.Context, candidate account.Account) (account.Account, error) {
	if strings.TrimSpace(candidate.Username) == "" {
		return account.Account{}, fmt.Errorf("username is required")
	}
	if len(candidate.Password) < minPasswordLength {
		return account.Account{}, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	_, err := s.store.GetAccountByUsername(ctx, candidate.Username)
	switch {
	case err == nil:
		return account.Account{}, ErrUsernameTaken
	case !errors.Is(err, storage.ErrNotFound):
		s.log.WithError(err).Errorf("register: lookup username %q failed", candidate.Username)
		return account.Account{}, err
	}

	created, err := s.store.CreateAccount(ctx, candidate)
	if err != nil {
		s.log.WithError(err).Errorf("register: insert account %q failed", candidate.Username)
		return account.Account{}, err
	}
	s.log.Infof("account %d registered", created.ID)
	return created, nil
}

// Authenticate checks the supplied credentials against the stored account.
// Passwords are compared with exact equality; the stored account, carrying
// its id, is returned on success.
func (s *Service) Authenticate(ctx context.Context, credentials account.Account) (account.Account, error) {
	existing, err := s.store.GetAccountByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return account.Account{}, ErrInvalidCredentials
		}
		s.log.WithError(err).Errorf("authenticate: lookup username %q failed", credentials.Username)
		return account.Account{}, err
	}

	if existing.Password != credentials.Password {
		return account.Account{}, ErrInvalidCredentials
	}
	return existing, nil
}

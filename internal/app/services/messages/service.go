// Package messages enforces message validation and referential integrity
// against accounts, delegating persistence to the message store.
package messages

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/micropost/micropost/internal/app/domain/message"
	"github.com/micropost/micropost/internal/app/storage"
	"github.com/micropost/micropost/pkg/logger"
)

const maxTextLength = 255

var (
	// ErrInvalidText reports message text that is blank or too long.
	ErrInvalidText = errors.New("message text must be 1-254 characters")
	// ErrUnknownAuthor reports a posted_by that references no account.
	ErrUnknownAuthor = errors.New("posting account does not exist")
)

// Service manages message creation, mutation and retrieval.
type Service struct {
	accounts storage.AccountStore
	store    storage.MessageStore
	log      *logger.Logger
}

// New constructs a message service.
func New(accounts storage.AccountStore, store storage.MessageStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("messages")
	}
	return &Service{accounts: accounts, store: store, log: log}
}

// validText reports whether text is non-blank after trimming and shorter
// than 255 characters.
func validText(text string) bool {
	return strings.TrimSpace(text) != "" && utf8.RuneCountInString(text) < maxTextLength
}

// List returns every stored message.
func (s *Service) List(ctx context.Context) ([]message.Message, error) {
	return s.store.ListMessages(ctx)
}

// ListByAccount returns the messages posted by the given account.
func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]message.Message, error) {
	return s.store.ListMessagesByAccount(ctx, accountID)
}

// Get retrieves a message by identifier.
func (s *Service) Get(ctx context.Context, id int64) (message.Message, error) {
	return s.store.GetMessage(ctx, id)
}

// Create validates and persists a new message. The text rule is checked
// first, then the authoring account must exist.
func (s *Service) Create(ctx context.Context, candidate message.Message) (message.Message, error) {
	if !validText(candidate.Text) {
		return message.Message{}, ErrInvalidText
	}

	if _, err := s.accounts.GetAccount(ctx, candidate.PostedBy); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return message.Message{}, ErrUnknownAuthor
		}
		s.log.WithError(err).Errorf("create: lookup account %d failed", candidate.PostedBy)
		return message.Message{}, err
	}

	created, err := s.store.CreateMessage(ctx, candidate)
	if err != nil {
		s.log.WithError(err).Errorf("create: insert message by %d failed", candidate.PostedBy)
		return message.Message{}, err
	}
	s.log.Infof("message %d created", created.ID)
	return created, nil
}

// UpdateText replaces the text of an existing message and returns the
// updated record. The returned message is re-read after the write rather
// than patched locally, so a concurrent writer's text can win; no
// transaction wraps the sequence.
func (s *Service) UpdateText(ctx context.Context, id int64, text string) (message.Message, error) {
	if _, err := s.store.GetMessage(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Errorf("update: lookup message %d failed", id)
		}
		return message.Message{}, err
	}

	if !validText(text) {
		return message.Message{}, ErrInvalidText
	}

	if err := s.store.UpdateMessageText(ctx, id, text); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Errorf("update: write message %d failed", id)
		}
		return message.Message{}, err
	}

	updated, err := s.store.GetMessage(ctx, id)
	if err != nil {
		s.log.WithError(err).Errorf("update: re-read message %d failed", id)
		return message.Message{}, err
	}
	s.log.Infof("message %d updated", id)
	return updated, nil
}

// Delete removes a message and returns its pre-deletion snapshot.
func (s *Service) Delete(ctx context.Context, id int64) (message.Message, error) {
	snapshot, err := s.store.GetMessage(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Errorf("delete: lookup message %d failed", id)
		}
		return message.Message{}, err
	}

	if err := s.store.DeleteMessage(ctx, id); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).Errorf("delete: remove message %d failed", id)
		}
		return message.Message{}, err
	}
	s.log.Infof("message %d deleted", id)
	return snapshot, nil
}

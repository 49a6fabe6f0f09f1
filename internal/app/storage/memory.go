package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/micropost/micropost/internal/app/domain/account"
	"github.com/micropost/micropost/internal/app/domain/message"
)

// Memory is a thread-safe in-memory persistence layer implementing the store
// interfaces in this package. It backs tests and DSN-less development runs
// and deliberately keeps the implementation simple.
type Memory struct {
	mu            sync.RWMutex
	nextAccountID int64
	nextMessageID int64
	accounts      map[int64]account.Account
	messages      map[int64]message.Message
}

var _ AccountStore = (*Memory)(nil)
var _ MessageStore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextAccountID: 1,
		nextMessageID: 1,
		accounts:      make(map[int64]account.Account),
		messages:      make(map[int64]message.Message),
	}
}

// AccountStore implementation -------------------------------------------------

func (m *Memory) CreateAccount(_ context.Context, acct account.Account) (account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.accounts {
		if existing.Username == acct.Username {
			return account.Account{}, fmt.Errorf("username %q already exists", acct.Username)
		}
	}

	acct.ID = m.nextAccountID
	m.nextAccountID++
	m.accounts[acct.ID] = acct
	return acct, nil
}

func (m *Memory) GetAccount(_ context.Context, id int64) (account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acct, ok := m.accounts[id]
	if !ok {
		return account.Account{}, ErrNotFound
	}
	return acct, nil
}

func (m *Memory) GetAccountByUsername(_ context.Context, username string) (account.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, acct := range m.accounts {
		if acct.Username == username {
			return acct, nil
		}
	}
	return account.Account{}, ErrNotFound
}

// MessageStore implementation -------------------------------------------------

func (m *Memory) CreateMessage(_ context.Context, msg message.Message) (message.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.ID = m.nextMessageID
	m.nextMessageID++
	m.messages[msg.ID] = msg
	return msg, nil
}

func (m *Memory) GetMessage(_ context.Context, id int64) (message.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	msg, ok := m.messages[id]
	if !ok {
		return message.Message{}, ErrNotFound
	}
	return msg, nil
}

func (m *Memory) ListMessages(_ context.Context) ([]message.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]message.Message, 0, len(m.messages))
	for _, msg := range m.messages {
		result = append(result, msg)
	}
	return result, nil
}

func (m *Memory) ListMessagesByAccount(_ context.Context, accountID int64) ([]message.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]message.Message, 0)
	for _, msg := range m.messages {
		if msg.PostedBy == accountID {
			result = append(result, msg)
		}
	}
	return result, nil
}

func (m *Memory) UpdateMessageText(_ context.Context, id int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg, ok := m.messages[id]
	if !ok {
		return ErrNotFound
	}
	msg.Text = text
	m.messages[id] = msg
	return nil
}

func (m *Memory) DeleteMessage(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.messages[id]; !ok {
		return ErrNotFound
	}
	delete(m.messages, id)
	return nil
}

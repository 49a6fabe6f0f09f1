package storage

import (
	"context"
	"errors"

	"github.com/micropost/micropost/internal/app/domain/account"
	"github.com/micropost/micropost/internal/app/domain/message"
)

// ErrNotFound reports that no record matched the lookup. Callers distinguish
// it from a store failure with errors.Is; the HTTP layer decides per endpoint
// whether the distinction survives to the response.
var ErrNotFound = errors.New("record not found")

// AccountStore persists account records.
type AccountStore interface {
	CreateAccount(ctx context.Context, acct account.Account) (account.Account, error)
	GetAccount(ctx context.Context, id int64) (account.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (account.Account, error)
}

// MessageStore persists message records.
type MessageStore interface {
	CreateMessage(ctx context.Context, msg message.Message) (message.Message, error)
	GetMessage(ctx context.Context, id int64) (message.Message, error)
	ListMessages(ctx context.Context) ([]message.Message, error)
	ListMessagesByAccount(ctx context.Context, accountID int64) ([]message.Message, error)
	UpdateMessageText(ctx context.Context, id int64, text string) error
	DeleteMessage(ctx context.Context, id int64) error
}

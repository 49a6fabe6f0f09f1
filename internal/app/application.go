package app

import (
	"github.com/micropost/micropost/internal/app/services/accounts"
	"github.com/micropost/micropost/internal/app/services/messages"
	"github.com/micropost/micropost/internal/app/storage"
	"github.com/micropost/micropost/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Accounts storage.AccountStore
	Messages storage.MessageStore
}

// Application ties the domain services together.
type Application struct {
	log *logger.Logger

	Accounts *accounts.Service
	Messages *messages.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := storage.NewMemory()
	if stores.Accounts == nil {
		stores.Accounts = mem
	}
	if stores.Messages == nil {
		stores.Messages = mem
	}

	return &Application{
		log:      log,
		Accounts: accounts.New(stores.Accounts, log),
		Messages: messages.New(stores.Accounts, stores.Messages, log),
	}
}

// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/micropost/micropost/internal/app/domain/account"
	"github.com/micropost/micropost/internal/app/domain/message"
	"github.com/micropost/micropost/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- AccountStore -----------------------------------------------------------

func (s *Store) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id
	`, acct.Username, acct.Password).Scan(&acct.ID)
	if err != nil {
		return account.Account{}, err
	}
	return acct, nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT account_id, username, password
		FROM account
		WHERE account_id = $1
	`, id)
	return scanAccount(row)
}

func (s *Store) GetAccountByUsername(ctx context.Context, username string) (account.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1
	`, username)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (account.Account, error) {
	var acct account.Account
	if err := row.Scan(&acct.ID, &acct.Username, &acct.Password); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Account{}, storage.ErrNotFound
		}
		return account.Account{}, err
	}
	return acct, nil
}

// --- MessageStore -----------------------------------------------------------

func (s *Store) CreateMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO message (posted_by, message_text, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`, msg.PostedBy, msg.Text, msg.PostedEpoch).Scan(&msg.ID)
	if err != nil {
		return message.Message{}, err
	}
	return msg, nil
}

func (s *Store) GetMessage(ctx context.Context, id int64) (message.Message, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE message_id = $1
	`, id)

	var msg message.Message
	if err := row.Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedEpoch); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return message.Message{}, storage.ErrNotFound
		}
		return message.Message{}, err
	}
	return msg, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func (s *Store) ListMessagesByAccount(ctx context.Context, accountID int64) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE posted_by = $1
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMessages(rows)
}

func collectMessages(rows *sql.Rows) ([]message.Message, error) {
	result := make([]message.Message, 0)
	for rows.Next() {
		var msg message.Message
		if err := rows.Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedEpoch); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func (s *Store) UpdateMessageText(ctx context.Context, id int64, text string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE message
		SET message_text = $2
		WHERE message_id = $1
	`, id, text)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM message WHERE message_id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

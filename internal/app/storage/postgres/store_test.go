package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/lib/pq"

	"github.com/micropost/micropost/internal/app/domain/account"
	"github.com/micropost/micropost/internal/app/domain/message"
	"github.com/micropost/micropost/internal/app/storage"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	return New(db), mock, func() { db.Close() }
}

func TestCreateAccountReturnsAssignedID(t *testing.T) {
	store, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("INSERT INTO account").
		WithArgs("bob", "password").
		WillReturnRows(sqlmock.NewRows([]string{"account_id"}).AddRow(7))

	acct, err := store.CreateAccount(context.Background(), account.Account{Username: "bob", Password: "password"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if acct.ID != 7 {
		t.Fatalf("expected assigned id 7, got %d", acct.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetAccountByUsernameAbsence(t *testing.T) {
	store, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT account_id, username, password").
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	_, err := store.GetAccountByUsername(context.Background(), "nobody")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateMessageTextRowsAffected(t *testing.T) {
	store, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("UPDATE message").
		WithArgs(int64(3), "new text").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE message").
		WithArgs(int64(4), "new text").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.UpdateMessageText(context.Background(), 3, "new text"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := store.UpdateMessageText(context.Background(), 4, "new text"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound when no rows affected, got %v", err)
	}
}

func TestDeleteMessageRowsAffected(t *testing.T) {
	store, mock, done := newMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM message").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM message").
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.DeleteMessage(context.Background(), 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteMessage(context.Background(), 3); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListMessagesEmpty(t *testing.T) {
	store, mock, done := newMock(t)
	defer done()

	mock.ExpectQuery("SELECT message_id, posted_by, message_text, time_posted_epoch").
		WillReturnRows(sqlmock.NewRows([]string{"message_id", "posted_by", "message_text", "time_posted_epoch"}))

	msgs, err := store.ListMessages(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if msgs == nil || len(msgs) != 0 {
		t.Fatalf("expected empty non-nil sequence, got %v", msgs)
	}
}

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	store := New(db)
	ctx := context.Background()

	acct, err := store.CreateAccount(ctx, account.Account{Username: "it_bob", Password: "password"})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	msg, err := store.CreateMessage(ctx, message.Message{PostedBy: acct.ID, Text: strings.Repeat("a", 254), PostedEpoch: 1669947792})
	if err != nil {
		t.Fatalf("create message: %v", err)
	}

	if err := store.UpdateMessageText(ctx, msg.ID, "updated"); err != nil {
		t.Fatalf("update message: %v", err)
	}
	if err := store.DeleteMessage(ctx, msg.ID); err != nil {
		t.Fatalf("delete message: %v", err)
	}
	if _, err := store.GetMessage(ctx, msg.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

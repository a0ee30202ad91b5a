package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlstore"
)

func newMockEnv(t *testing.T) (*testEnv, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return newEnvOn(t, sqlstore.New(db, sqlite.Dialect{}, nil)), mock
}

func TestAccountCreate_LateFailureRollsBack(t *testing.T) {
	env, mock := newMockEnv(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO tenants").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM tenants").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("tenant-1", "acme", now, now))
	mock.ExpectQuery("SELECT (.+) FROM roles").
		WithArgs(domain.RoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at"}).
			AddRow("role-1", domain.RoleAdmin, "Administrator", now))
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO refresh_tokens").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := env.Accounts.Create(context.Background(), CreateAccountInput{
		Username:   "ana",
		Email:      "ana@example.com",
		Password:   "correct-horse",
		Role:       domain.RoleAdmin,
		TenantName: "acme",
	})
	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountCreate_CancelledContextNeverCommits(t *testing.T) {
	env, mock := newMockEnv(t)

	mock.ExpectBegin().WillReturnError(context.Canceled)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.Accounts.Create(ctx, CreateAccountInput{
		Username:   "ana",
		Email:      "ana@example.com",
		Password:   "correct-horse",
		Role:       domain.RoleAdmin,
		TenantName: "acme",
	})
	require.Error(t, err)
}

func TestNotificationCreate_NoEventOnFailure(t *testing.T) {
	env, mock := newMockEnv(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO notifications").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := env.Notifications.Create(context.Background(), CreateNotificationInput{UserID: "user-1", Message: "hi"})
	require.Error(t, err)
	require.Empty(t, env.Sink.Events())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountDelete_FailureRollsBack(t *testing.T) {
	env, mock := newMockEnv(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "username", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow("user-1", "tenant-1", "ana", "ana@example.com", "hash", domain.RoleUser, now, now))
	mock.ExpectExec("DELETE FROM user_roles").WithArgs("user-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM refresh_tokens").WithArgs("user-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM users").WithArgs("user-1").WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := env.Accounts.Delete(context.Background(), "user-1")
	require.ErrorContains(t, err, "database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountUpdate_InvalidEmailNeverTouchesStore(t *testing.T) {
	env, mock := newMockEnv(t)

	bad := "not-an-email"
	_, err := env.Accounts.Update(context.Background(), "user-1", UpdateAccountInput{Email: &bad})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, msgInvalidEmail, ve.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/saasadmin/internal/admin/domain"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store"
	"github.com/aussiebroadwan/saasadmin/internal/admin/store/drivers/sqlite"
	"github.com/aussiebroadwan/saasadmin/pkg/cryptox"
	"github.com/aussiebroadwan/saasadmin/pkg/jwtx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testEnv struct {
	Store         store.Store
	Tokens        *TokenService
	Tenants       *TenantService
	Roles         *RolesService
	Accounts      *AccountService
	Sessions      *SessionService
	Organizations *OrganizationService
	Sidebars      *SidebarService
	Notifications *NotificationService
	Sink          *recordingSink
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return newEnvOn(t, st)
}

func newEnvOn(t *testing.T, st store.Store) *testEnv {
	t.Helper()

	accessKey, err := jwtx.NewHMACKey([]byte("access-secret-for-tests-0123"), 0)
	require.NoError(t, err)
	refreshKey, err := jwtx.NewHMACKey([]byte("refresh-secret-for-tests-0123"), 0)
	require.NoError(t, err)

	tokens := &TokenService{Store: st, AccessKey: accessKey, RefreshKey: refreshKey}
	tenants := &TenantService{Store: st}
	roles := &RolesService{Store: st}
	sink := &recordingSink{}

	return &testEnv{
		Store:         st,
		Tokens:        tokens,
		Tenants:       tenants,
		Roles:         roles,
		Accounts:      &AccountService{Store: st, Tokens: tokens, Tenants: tenants, Roles: roles},
		Sessions:      &SessionService{Store: st, Tokens: tokens},
		Organizations: &OrganizationService{Store: st},
		Sidebars:      &SidebarService{Store: st},
		Notifications: &NotificationService{Store: st, Sink: sink},
		Sink:          sink,
	}
}

// createAccount registers username in tenant "acme" with the given role.
func (e *testEnv) createAccount(t *testing.T, username, role string) AccountResult {
	t.Helper()

	res, err := e.Accounts.Create(context.Background(), CreateAccountInput{
		Username:   username,
		Email:      username + "@example.com",
		Password:   "correct-horse",
		Role:       role,
		TenantName: "acme",
	})
	require.NoError(t, err)
	return res
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.NotificationEvent
}

func (s *recordingSink) Publish(ev domain.NotificationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) Events() []domain.NotificationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.NotificationEvent(nil), s.events...)
}

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("ACCOUNTS_ENV_FILE", "")

	dir := t.TempDir()
	cfg := LoadConfig()
	cfg.DatabaseFile = filepath.Join(dir, "accounts.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.Env = "test"
	cfg.LogLevel = "error"
	cfg.NumKeys = 1
	return cfg
}

func TestNew_WiresTheService(t *testing.T) {
	ctx := context.Background()

	application, err := New(ctx, testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	client := accountsdk.NewSDKClient(srv.URL)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	account, err := client.Register(ctx, accountsdk.RegisterRequest{
		Email:        "a@x.com",
		Password:     "pw1",
		FrontBaseURL: "https://app.example.com",
	})
	require.NoError(t, err)
	require.False(t, account.IsVerified)

	_, err = client.Login(ctx, accountsdk.LoginRequest{Email: "a@x.com", Password: "pw1"})
	require.True(t, accountsdk.IsErrorCode(err, accountsdk.ErrorCodeEmailNotVerified))

	jwks, err := client.GetJWKS(ctx)
	require.NoError(t, err)
	require.Len(t, jwks.Keys, 1)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.MailTransport = TransportSMTP

	_, err := New(context.Background(), cfg)
	require.ErrorContains(t, err, "SMTP_HOST")
}

func TestMigrate(t *testing.T) {
	cfg := testConfig(t)

	require.NoError(t, Migrate(context.Background(), cfg))
	// Running again is a no-op
	require.NoError(t, Migrate(context.Background(), cfg))

	db, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Ping(context.Background()))

	_, err = db.Accounts().ListAccounts(context.Background())
	require.NoError(t, err)
}

func TestApplicationShutdown(t *testing.T) {
	application, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)

	application.housekeepingService.Start()
	require.NoError(t, application.Shutdown())

	// The server never listened; shutting it down leaves it closed
	require.ErrorIs(t, application.server.ListenAndServe(), http.ErrServerClosed)
}

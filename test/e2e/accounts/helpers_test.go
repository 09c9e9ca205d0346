//go:build e2e

package accounts_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/accountsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and flow helpers for the accounts service end-to-end tests.
 * Emails go through the log transport, so one-time codes are read back from
 * the container logs.
 */

const (
	testImageName = "accounts-test:latest"
	frontBaseURL  = "https://app.example.com"
	testPassword  = "correct horse battery staple"
)

var (
	verifyLinkRE = regexp.MustCompile(`/auth/verify_email/([A-Za-z0-9_-]+)`)
	resetLinkRE  = regexp.MustCompile(`/auth/reset_password/([A-Za-z0-9_-]+)`)
)

type testService struct {
	Client    *accountsdk.SDKClient
	container testcontainers.Container
}

// TestMain builds the Docker image once before all tests and removes it
// afterwards.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Accounts Service Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Accounts Service Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/accounts/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // image might not exist
}

// setupAccountsContainer starts the service with the log mail transport and
// terminates it when the test ends.
func setupAccountsContainer(t *testing.T) *testService {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env: map[string]string{
			"ACCOUNTS_ISSUER":                   "accounts-e2e",
			"ACCOUNTS_ALGORITHM":                "EdDSA",
			"ACCOUNTS_NUM_KEYS":                 "1",
			"ACCOUNTS_ALLOWED_FRONTEND_ORIGINS": frontBaseURL,
			"MAIL_TRANSPORT":                    "log",
			"ENV":                               "dev", // logs email bodies
			"LOG_LEVEL":                         "info",
			"LOG_FORMAT":                        "json",
		},
		WaitingFor: wait.ForHTTP("/livez").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return &testService{
		Client:    accountsdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port())),
		container: container,
	}
}

// lastCode returns the most recent one-time code matching re in the
// container logs. Log lines are flushed asynchronously, so it polls briefly.
func (s *testService) lastCode(t *testing.T, re *regexp.Regexp) string {
	t.Helper()

	var code string
	require.Eventually(t, func() bool {
		rc, err := s.container.Logs(context.Background())
		if err != nil {
			return false
		}
		defer rc.Close()

		logs, err := io.ReadAll(rc)
		if err != nil {
			return false
		}
		matches := re.FindAllSubmatch(logs, -1)
		if len(matches) == 0 {
			return false
		}
		code = string(matches[len(matches)-1][1])
		return true
	}, 5*time.Second, 100*time.Millisecond, "no one-time code in the container logs")
	return code
}

// registerAndVerify creates an account and confirms its email.
func (s *testService) registerAndVerify(t *testing.T, email string) *accountsdk.Account {
	t.Helper()
	ctx := t.Context()

	_, err := s.Client.Register(ctx, accountsdk.RegisterRequest{
		Email:        email,
		Password:     testPassword,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		FrontBaseURL: frontBaseURL,
	})
	require.NoError(t, err, "register should succeed")

	account, err := s.Client.VerifyEmail(ctx, s.lastCode(t, verifyLinkRE))
	require.NoError(t, err, "verify should succeed")
	require.True(t, account.IsVerified)
	return account
}

// login signs in with testPassword and returns a session.
func (s *testService) login(t *testing.T, email string) *accountsdk.Session {
	t.Helper()

	session, err := s.Client.AuthenticateWithPassword(t.Context(), email, testPassword)
	require.NoError(t, err, "login should succeed")
	require.NotEmpty(t, session.Token())
	return session
}

// requireErrorCode checks that err is an API error with the given code.
func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, accountsdk.IsErrorCode(err, code), "expected error code %q, got: %v", code, err)
}

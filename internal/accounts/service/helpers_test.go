package service

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/accounts/internal/email"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://app.example.com"

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *clock { return &clock{t: time.Now().UTC()} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	store    *sqlite.Store
	sender   *email.MemorySender
	keys     *jwtx.KeyManager
	clock    *clock
	accounts *AccountService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	sender := email.NewMemorySender()
	mailer, err := email.NewMailer("noreply@example.com", sender)
	require.NoError(t, err)

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Algorithm: jwtx.AlgorithmEdDSA,
		Issuer:    "accounts-test",
		NumKeys:   1,
	})
	require.NoError(t, err)

	// Cheap parameters keep the suite fast.
	hasher := cryptox.NewPasswordHasher("test-pepper")
	hasher.Memory = 1024
	hasher.Iterations = 1

	clk := newClock()
	return &fixture{
		store:  st,
		sender: sender,
		keys:   km,
		clock:  clk,
		accounts: &AccountService{
			Store:    st,
			Hasher:   hasher,
			Tokens:   &TokenService{KeyManager: km, Issuer: "accounts-test", TTL: time.Hour},
			Notifier: mailer,
			Now:      clk.Now,
		},
		profiles: &ProfileService{Store: st, Now: clk.Now},
	}
}

func registerInput(addr, password string) RegisterInput {
	return RegisterInput{
		Email:        addr,
		Password:     password,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		FrontBaseURL: testBaseURL,
	}
}

// lastCode pulls the one-time code out of the most recent email link.
func (f *fixture) lastCode(t *testing.T, path string) string {
	t.Helper()

	msg, ok := f.sender.Last()
	require.True(t, ok, "no email sent")

	prefix := testBaseURL + path
	idx := strings.Index(msg.TextBody, prefix)
	require.GreaterOrEqual(t, idx, 0, "link not found in %q", msg.TextBody)

	rest := msg.TextBody[idx+len(prefix):]
	if end := strings.IndexAny(rest, " \n\r\t"); end >= 0 {
		rest = rest[:end]
	}
	require.NotEmpty(t, rest)
	return rest
}

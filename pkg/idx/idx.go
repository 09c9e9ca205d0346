// Package idx generates the sortable identifiers used for accounts, one-time
// codes and request correlation.
package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a canonical 26 character ULID string.
type ID string

// Zero is the empty ID. Stores treat it as "not assigned".
const Zero ID = ""

// ErrInvalid reports a malformed identifier.
var ErrInvalid = errors.New("idx: invalid id")

// Source hands out monotonic ULIDs. It is safe for concurrent use.
type Source struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewSource builds a Source reading randomness from r. A nil reader uses
// crypto/rand.
func NewSource(r io.Reader) *Source {
	if r == nil {
		r = rand.Reader
	}
	return &Source{entropy: ulid.Monotonic(r, 0)}
}

// NewAt returns an ID whose timestamp component is t.
func (s *Source) NewAt(t time.Time) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), s.entropy).String())
}

var (
	defaultOnce   sync.Once
	defaultSource *Source
)

func source() *Source {
	defaultOnce.Do(func() { defaultSource = NewSource(nil) })
	return defaultSource
}

// New returns a fresh ID stamped with the current UTC time.
func New() ID {
	return source().NewAt(time.Now())
}

// NewAt returns a fresh ID stamped with t.
func NewAt(t time.Time) ID {
	return source().NewAt(t)
}

// Parse validates s and returns it as an ID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(strings.ToUpper(s)), nil
}

// MustParse is Parse for hard-coded values.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time returns the creation time embedded in the ID, or the zero time when
// the ID cannot be decoded.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}

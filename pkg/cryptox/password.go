package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Argon2id parameters for newly created hashes.
const (
	DefaultMemory      = 19 * 1024 // KiB
	DefaultIterations  = 2
	DefaultParallelism = 1

	keyLength  = 32
	saltLength = 16
)

var (
	// ErrPasswordMismatch is returned when a password does not verify.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrUnsupportedHash is returned for encodings the hasher cannot read.
	ErrUnsupportedHash = errors.New("cryptox: unsupported password hash")
)

// PasswordHasher produces PHC encoded Argon2id hashes and verifies both those
// and bcrypt hashes imported from older deployments.
type PasswordHasher struct {
	Pepper      string
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
}

// NewPasswordHasher returns a hasher with the default Argon2id cost.
func NewPasswordHasher(pepper string) *PasswordHasher {
	return &PasswordHasher{
		Pepper:      pepper,
		Memory:      DefaultMemory,
		Iterations:  DefaultIterations,
		Parallelism: DefaultParallelism,
	}
}

// Hash derives a new hash with a fresh random salt.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	sum := argon2.IDKey([]byte(password+h.Pepper), salt, h.Iterations, h.Memory, h.Parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.Memory, h.Iterations, h.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(sum),
	), nil
}

// Verify checks password against encoded. The comparison is constant time for
// both supported formats.
func (h *PasswordHasher) Verify(password, encoded string) error {
	switch {
	case strings.HasPrefix(encoded, "$argon2id$"):
		return h.verifyArgon2id(password, encoded)
	case isBcrypt(encoded):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	default:
		return ErrUnsupportedHash
	}
}

// NeedsRehash reports whether encoded was produced by a different algorithm
// or with different parameters than the hasher currently uses.
func (h *PasswordHasher) NeedsRehash(encoded string) bool {
	p, err := parseArgon2id(encoded)
	if err != nil {
		return true
	}
	return p.memory != h.Memory || p.iterations != h.Iterations || p.parallelism != h.Parallelism
}

func (h *PasswordHasher) verifyArgon2id(password, encoded string) error {
	p, err := parseArgon2id(encoded)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		[]byte(password+h.Pepper),
		p.salt,
		p.iterations,
		p.memory,
		p.parallelism,
		uint32(len(p.sum)), // #nosec G115 - bounded by the decoded hash
	)

	if subtle.ConstantTimeCompare(computed, p.sum) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

type argon2idParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	sum         []byte
}

// parseArgon2id reads $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func parseArgon2id(encoded string) (argon2idParams, error) {
	var p argon2idParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, fmt.Errorf("%w: malformed argon2id encoding", ErrUnsupportedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return p, fmt.Errorf("%w: argon2 version %q", ErrUnsupportedHash, parts[2])
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return p, fmt.Errorf("%w: parameters: %v", ErrUnsupportedHash, err)
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return p, fmt.Errorf("%w: salt: %v", ErrUnsupportedHash, err)
	}
	if p.sum, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.sum) == 0 {
		return p, fmt.Errorf("%w: hash: %v", ErrUnsupportedHash, err)
	}
	return p, nil
}

func isBcrypt(encoded string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, prefix) {
			return true
		}
	}
	return false
}

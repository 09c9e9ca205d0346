package jwtx

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
)

// KeyManager owns the in-memory signing keys of one service instance and the
// verifier for tokens they produced.
type KeyManager struct {
	KeySet   *KeySet
	Verifier Verifier

	algorithm string
	signers   []Signer
}

// KeyManagerOptions configures NewEphemeralKeyManager.
type KeyManagerOptions struct {
	Algorithm string // EdDSA or ES256
	Issuer    string
	Audience  []string
	Leeway    time.Duration

	// NumKeys is clamped to [1, 10]; zero means 3.
	NumKeys int
}

// NewEphemeralKeyManager generates fresh keys that only live in memory, so
// every token is invalidated when the process restarts.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: issuer is required")
	}

	generate, err := keyGenerator(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	n := opts.NumKeys
	switch {
	case n <= 0:
		n = 3
	case n > 10:
		n = 10
	}

	km := &KeyManager{
		KeySet:    NewKeySet(),
		algorithm: opts.Algorithm,
		signers:   make([]Signer, 0, n),
	}

	for i := range n {
		pemKey, err := generate()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}

		signer, err := NewSigner(opts.Algorithm, "accounts-"+cryptox.MustGenerateToken(cryptox.TokenSize128), pemKey)
		if err != nil {
			return nil, fmt.Errorf("jwtx: load key %d: %w", i+1, err)
		}
		if err := km.KeySet.AddSigner(signer); err != nil {
			return nil, fmt.Errorf("jwtx: publish key %d: %w", i+1, err)
		}
		km.signers = append(km.signers, signer)
	}

	km.Verifier = NewVerifier(km.KeySet, VerifyOptions{
		Issuer:   opts.Issuer,
		Audience: opts.Audience,
		Leeway:   opts.Leeway,
	})
	return km, nil
}

func keyGenerator(alg string) (func() ([]byte, error), error) {
	switch alg {
	case AlgorithmEdDSA:
		return cryptox.GenerateEd25519Key, nil
	case AlgorithmES256:
		return cryptox.GenerateES256Key, nil
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, ES256)", alg)
	}
}

func (km *KeyManager) Algorithm() string { return km.algorithm }
func (km *KeyManager) NumSigners() int   { return len(km.signers) }
func (km *KeyManager) IsReady() bool     { return km.KeySet.IsReady() }

// GetSigner picks one of the signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	if len(km.signers) == 0 {
		return nil
	}
	return km.signers[rand.IntN(len(km.signers))]
}

package jwtx

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithms.
const (
	AlgorithmEdDSA = "EdDSA"
	AlgorithmES256 = "ES256"
)

// Signer signs claim sets with one private key.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

type keySigner struct {
	kid    string
	method jwt.SigningMethod
	key    crypto.Signer
	jwk    JWK
}

// NewSigner loads a PKCS8 PEM private key for alg and tags tokens with kid.
func NewSigner(alg, kid string, pemKey []byte) (Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM private key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PKCS8 PRIVATE KEY, got %q", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	s := &keySigner{kid: kid}
	switch alg {
	case AlgorithmEdDSA:
		key, ok := parsed.(ed25519.PrivateKey)
		if !ok {
			return nil, errors.New("jwtx: EdDSA requires an Ed25519 key")
		}
		s.method = jwt.SigningMethodEdDSA
		s.key = key
		s.jwk = NewEd25519JWK(kid, alg, key.Public().(ed25519.PublicKey))

	case AlgorithmES256:
		key, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return nil, errors.New("jwtx: ES256 requires an ECDSA key")
		}
		if name := key.Curve.Params().Name; name != "P-256" {
			return nil, fmt.Errorf("jwtx: ES256 requires P-256, got %s", name)
		}
		s.method = jwt.SigningMethodES256
		s.key = key
		s.jwk = NewES256JWK(kid, alg, &key.PublicKey)

	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q", alg)
	}

	return s, nil
}

func (s *keySigner) Alg() string    { return s.method.Alg() }
func (s *keySigner) KID() string    { return s.kid }
func (s *keySigner) PublicJWK() JWK { return s.jwk }

func (s *keySigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(s.method, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

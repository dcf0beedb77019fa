package jwtx

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hearthhq/hearth/pkg/cryptox"
)

// KeyManager owns the active HS256 signing secret and the set of secrets
// still accepted for verification.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	mu     sync.RWMutex
	signer Signer
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Secret signs every new token.
	Secret []byte

	// PreviousSecrets are retired secrets whose tokens still verify until
	// they expire.
	PreviousSecrets [][]byte

	// Issuer is the issuer claim (iss) that will be validated in tokens.
	Issuer string

	// Audience is the list of audience values (aud) that will be validated.
	// Empty slice means no audience validation.
	Audience []string

	Leeway time.Duration
	Now    func() time.Time
}

// NewHMACKeyManager wires a signer for opts.Secret and a verifier that
// accepts it alongside opts.PreviousSecrets.
func NewHMACKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	keyset := NewKeySet()
	for i, prev := range opts.PreviousSecrets {
		if len(prev) < MinSecretBytes {
			return nil, fmt.Errorf("jwtx: previous secret %d: %w", i+1, ErrWeakSecret)
		}
		keyset.Add(KeyID(prev), prev)
	}

	km := &KeyManager{
		KeySet: keyset,
		Verifier: NewVerifierHS256(keyset, VerifyOptions{
			Issuer:   opts.Issuer,
			Audience: opts.Audience,
			Leeway:   opts.Leeway,
			Now:      opts.Now,
		}),
	}
	if _, err := km.Rotate(opts.Secret); err != nil {
		return nil, err
	}
	return km, nil
}

// KeyID derives a stable kid from a secret without revealing it.
func KeyID(secret []byte) string {
	return "hearth-" + cryptox.Fingerprint(secret)[:16]
}

// Signer returns the active signer.
func (km *KeyManager) Signer() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return km.signer
}

// Rotate makes secret the active signing secret. The previous secret stays
// in the KeySet so outstanding tokens keep verifying.
func (km *KeyManager) Rotate(secret []byte) (Signer, error) {
	kid := KeyID(secret)
	signer, err := NewSignerHS256(kid, secret)
	if err != nil {
		return nil, err
	}

	km.mu.Lock()
	defer km.mu.Unlock()

	km.KeySet.Add(kid, secret)
	km.signer = signer
	return signer, nil
}

// IsReady returns true if the KeyManager can sign and verify.
func (km *KeyManager) IsReady() bool {
	return km.Signer() != nil && km.KeySet.IsReady()
}

package jwtx

import (
	"errors"
	"slices"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds HMAC verification secrets by kid. It is safe for concurrent
// use so secrets can be rotated while requests are being verified.
type KeySet struct {
	mu      sync.RWMutex
	secrets map[string][]byte
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{secrets: make(map[string][]byte)}
}

// Add registers secret under kid, replacing any previous value.
func (k *KeySet) Add(kid string, secret []byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.secrets[kid] = append([]byte(nil), secret...)
}

// Get returns the secret for kid.
func (k *KeySet) Get(kid string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if s, ok := k.secrets[kid]; ok {
		return s, nil
	}
	return nil, ErrNoKey
}

// KIDs lists the registered key ids in sorted order.
func (k *KeySet) KIDs() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := make([]string, 0, len(k.secrets))
	for kid := range k.secrets {
		out = append(out, kid)
	}
	slices.Sort(out)
	return out
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.secrets) > 0
}

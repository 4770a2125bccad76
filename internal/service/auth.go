package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidAPIKey = errors.New("invalid api key")
	ErrWeakAPIKey    = errors.New("api key does not meet requirements")
)

const minAPIKeyLength = 24

// APIKeyAuthenticator checks bearer keys against bcrypt hashes from the
// configuration. With no hashes configured every request is allowed.
type APIKeyAuthenticator struct {
	hashes [][]byte
}

func NewAPIKeyAuthenticator(hashes []string) (*APIKeyAuthenticator, error) {
	a := &APIKeyAuthenticator{}
	for i, h := range hashes {
		if _, err := bcrypt.Cost([]byte(h)); err != nil {
			return nil, fmt.Errorf("api key hash %d: %w", i, err)
		}
		a.hashes = append(a.hashes, []byte(h))
	}
	return a, nil
}

func (a *APIKeyAuthenticator) Enabled() bool {
	return len(a.hashes) > 0
}

func (a *APIKeyAuthenticator) Authenticate(key string) error {
	if !a.Enabled() {
		return nil
	}
	if key == "" {
		return ErrInvalidAPIKey
	}
	for _, h := range a.hashes {
		if bcrypt.CompareHashAndPassword(h, []byte(key)) == nil {
			return nil
		}
	}
	return ErrInvalidAPIKey
}

// GenerateAPIKey returns a random key suitable for HashAPIKey.
func GenerateAPIKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func HashAPIKey(key string) (string, error) {
	return hashAPIKey(key, bcrypt.DefaultCost)
}

func hashAPIKey(key string, cost int) (string, error) {
	if len(key) < minAPIKeyLength {
		return "", fmt.Errorf("%w: must be at least %d characters", ErrWeakAPIKey, minAPIKeyLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

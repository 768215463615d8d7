package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultTTL is how long a generated code stays valid.
const DefaultTTL = 5 * time.Minute

// Store issues and verifies one-time codes for password resets. Codes
// are single-use: a successful Verify consumes the code.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Generate creates a fresh 6-digit code for the given email, replacing
// any outstanding code.
func (s *Store) Generate(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())
	s.cache.Set(email, code, s.ttl)
	return code, nil
}

// Restore puts a code back after a Verify that was only meant as a
// check, keeping the remaining TTL semantics simple: a fresh window.
func (s *Store) Restore(email, code string) {
	s.cache.Set(email, code, s.ttl)
}

// Verify checks the code for the given email and consumes it on
// success. An expired, missing, or mismatched code returns false.
func (s *Store) Verify(email, code string) bool {
	v, ok := s.cache.Get(email)
	if !ok {
		return false
	}
	stored, ok := v.(string)
	if !ok || stored != code {
		return false
	}
	s.cache.Delete(email)
	return true
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hms-backend/hms-api/internal/model"
)

// DefaultTokenTTL is the access token lifetime.
const DefaultTokenTTL = 24 * time.Hour

var (
	ErrInvalidToken = fmt.Errorf("invalid token")
	ErrExpiredToken = fmt.Errorf("token expired")
)

// Principal is the decoded identity and authorization context carried by
// a verified token. The capability set is the one embedded at issuance;
// it is never re-derived from the role.
type Principal struct {
	UserID       uuid.UUID          `json:"user_id"`
	Email        string             `json:"email"`
	Role         model.Role         `json:"role"`
	Capabilities []model.Capability `json:"capabilities"`
}

// HasCapability reports whether the principal was granted cap.
func (p *Principal) HasCapability(cap model.Capability) bool {
	for _, c := range p.Capabilities {
		if c == cap {
			return true
		}
	}
	return false
}

type tokenClaims struct {
	UserID       string   `json:"user_id"`
	Role         string   `json:"role"`
	Capabilities []string `json:"access"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed access tokens.
type JWTService interface {
	Issue(user *model.User, capabilities []model.Capability) (string, time.Time, error)
	Verify(tokenString string) (*Principal, error)
}

type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a JWTService signing with HS256 over the shared
// secret. ttl <= 0 falls back to DefaultTokenTTL.
func NewJWTService(secret string, ttl time.Duration) JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &jwtService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the user's identity, role and the exact
// capability set granted at this moment. Later policy changes do not
// affect already-issued tokens.
func (s *jwtService) Issue(user *model.User, capabilities []model.Capability) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.ttl)

	caps := make([]string, len(capabilities))
	for i, c := range capabilities {
		caps[i] = string(c)
	}

	claims := tokenClaims{
		UserID:       user.ID.String(),
		Role:         string(user.Role),
		Capabilities: caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify decodes and validates tokenString. Malformed tokens, wrong
// signing methods, bad signatures and expired tokens all come back as an
// error, never a panic; callers treat any error as unauthenticated.
func (s *jwtService) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	caps := make([]model.Capability, len(claims.Capabilities))
	for i, c := range claims.Capabilities {
		caps[i] = model.Capability(c)
	}

	return &Principal{
		UserID:       userID,
		Email:        claims.Subject,
		Role:         role,
		Capabilities: caps,
	}, nil
}

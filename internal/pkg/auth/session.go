package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session errors
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrInvalidFormat = errors.New("invalid token format")
	ErrRevokedToken  = errors.New("session has ended")
)

// SessionConfig defines session token settings
type SessionConfig struct {
	SecretKey string
	// TTL of zero issues tokens without an exp claim; the session then lasts
	// until Revoke
	TTL         time.Duration
	TokenIssuer string
}

// Claims defines the admin session token content
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is an issued console session
type Session struct {
	Token     string
	ID        string
	Username  string
	ExpiresAt time.Time // zero when the session never expires
}

// SessionService issues and checks admin console session tokens. A token is
// only accepted while its id is in the live set, so Revoke ends it at once.
type SessionService struct {
	config SessionConfig
	now    func() time.Time

	mu   sync.Mutex
	live map[string]time.Time
}

// NewSessionService creates a new session service
func NewSessionService(config SessionConfig, now func() time.Time) *SessionService {
	if now == nil {
		now = time.Now
	}
	return &SessionService{
		config: config,
		now:    now,
		live:   make(map[string]time.Time),
	}
}

// Issue creates a signed token for username
func (s *SessionService) Issue(username string) (*Session, error) {
	now := s.now()
	var expiry time.Time
	if s.config.TTL > 0 {
		expiry = now.Add(s.config.TTL)
	}

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   username,
			ID:        uuid.New().String(),
		},
	}

	if !expiry.IsZero() {
		claims.ExpiresAt = jwt.NewNumericDate(expiry)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.mu.Lock()
	s.pruneLocked(now)
	s.live[claims.ID] = expiry
	s.mu.Unlock()

	return &Session{Token: signed, ID: claims.ID, Username: username, ExpiresAt: expiry}, nil
}

// Validate parses tokenString and checks that the session is still live
func (s *SessionService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidFormat
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(s.config.TokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username == "" {
		return nil, ErrInvalidToken
	}

	s.mu.Lock()
	_, live := s.live[claims.ID]
	s.mu.Unlock()
	if !live {
		return nil, ErrRevokedToken
	}
	return claims, nil
}

// Revoke ends the session with the given token id
func (s *SessionService) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.live, id)
}

// LiveCount returns the number of unexpired, unrevoked sessions
func (s *SessionService) LiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	return len(s.live)
}

func (s *SessionService) pruneLocked(now time.Time) {
	for id, exp := range s.live {
		if !exp.IsZero() && !now.Before(exp) {
			delete(s.live, id)
		}
	}
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidFormat
	}

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return authHeader, nil
}

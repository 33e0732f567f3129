// Package auth is the account and session provider: bcrypt-hashed
// credentials in the store, signed JWTs as session tokens. The rest of the
// app only ever sees the opaque user ID carried in the claims.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"studytrack/internal/storage"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims is the JWT payload for a signed-in user.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	jwt.RegisteredClaims
}

// Service issues and validates session tokens against the account store.
type Service struct {
	db  *storage.DB
	key []byte
}

// NewService creates an auth service. When secret is empty a random key is
// generated, which means sessions do not survive a restart.
func NewService(db *storage.DB, secret string) *Service {
	if secret == "" {
		secret = GenerateRandomKey()
	}
	return &Service{db: db, key: []byte(secret)}
}

// GenerateRandomKey returns a fresh 32-byte hex-encoded signing key.
func GenerateRandomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate signing key: %v", err))
	}
	return hex.EncodeToString(b)
}

// SignUp registers a new account and returns it.
func (s *Service) SignUp(email, password string) (*storage.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.db.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := storage.User{
		ID:           newUserID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.CreateUser(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// LogIn checks the credentials and returns a signed session token.
func (s *Service) LogIn(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.db.FindUserByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(user)
}

// IssueToken signs a session token for the user.
func (s *Service) IssueToken(user *storage.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a session token and returns its claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

func newUserID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("failed to generate user ID: %v", err))
	}
	return hex.EncodeToString(b)
}

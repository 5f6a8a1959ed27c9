package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccessClaims is what the auth middleware needs from a verified token.
type AccessClaims struct {
	UserID       uint
	Role         string
	TokenVersion int
}

type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewJWTService(secretKey string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

// TTL is the access token lifetime.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken signs a short-lived access token for the user.
func (s *JWTService) GenerateToken(userID uint, email, role string, tokenVersion int) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":       userID,
		"email":         email,
		"role":          role,
		"token_version": tokenVersion,
		"exp":           now.Add(s.ttl).Unix(),
		"iat":           now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken checks signature and expiry and extracts the claims.
func (s *JWTService) ValidateToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, errors.New("invalid user_id claim")
	}
	version, ok := claims["token_version"].(float64)
	if !ok {
		return nil, errors.New("token version missing")
	}
	role, _ := claims["role"].(string)

	return &AccessClaims{
		UserID:       uint(userID),
		Role:         role,
		TokenVersion: int(version),
	}, nil
}

// GenerateRefreshToken returns "<userID>.<random>". The prefix lets the
// server find the owner without scanning every stored hash.
func (s *JWTService) GenerateRefreshToken(userID uint) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return strconv.FormatUint(uint64(userID), 10) + "." + base64.RawURLEncoding.EncodeToString(buf), nil
}

// ParseRefreshToken extracts the user ID prefix of a refresh token.
func (s *JWTService) ParseRefreshToken(refreshToken string) (uint, error) {
	idPart, secret, ok := strings.Cut(refreshToken, ".")
	if !ok || secret == "" {
		return 0, errors.New("malformed refresh token")
	}
	id, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("malformed refresh token")
	}
	return uint(id), nil
}

func (s *JWTService) HashRefreshToken(refreshToken string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(refreshToken), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash refresh token: %w", err)
	}
	return string(hash), nil
}

func (s *JWTService) VerifyRefreshToken(refreshToken, hashedToken string) bool {
	if hashedToken == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedToken), []byte(refreshToken)) == nil
}

package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/helpdesk-inc/helpdesk/internal/shared/authorization"
	"github.com/helpdesk-inc/helpdesk/internal/shared/biztime"
)

const issuer = "helpdesk"

// Claims identify a console session. The subject is the user ID.
type Claims struct {
	Username string                 `json:"username"`
	Role     authorization.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret     []byte
	expMinutes int
}

func NewJWTService(secret string, expMinutes int) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		expMinutes: expMinutes,
	}
}

// Generate signs a session token with a fresh session ID.
func (s *JWTService) Generate(auth authorization.AuthContext) (string, error) {
	now := biztime.NowUTC()
	claims := &Claims{
		Username: auth.Username,
		Role:     auth.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(auth.UserID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ExpiresIn())),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Verify parses a session token and returns the caller it represents.
func (s *JWTService) Verify(tokenString string) (authorization.AuthContext, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return authorization.Anonymous(), fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return authorization.Anonymous(), fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || userID == 0 {
		return authorization.Anonymous(), fmt.Errorf("invalid token subject")
	}

	return authorization.AuthContext{
		UserID:          uint(userID),
		Username:        claims.Username,
		Role:            authorization.ParseUserRole(string(claims.Role)),
		IsAuthenticated: true,
	}, nil
}

// ExpiresIn is the session lifetime.
func (s *JWTService) ExpiresIn() time.Duration {
	return time.Duration(s.expMinutes) * time.Minute
}

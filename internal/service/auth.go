package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pageza/nutriplan/backend/internal/types"
)

const tokenIssuer = "nutriplan"

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid token")
	ErrUnknownRole   = errors.New("unknown operator role")
)

// OperatorAuthService issues and validates operator tokens for the admin
// endpoints. There are no user accounts; tokens are minted from the CLI.
type OperatorAuthService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ IOperatorAuthService = (*OperatorAuthService)(nil)

func NewOperatorAuthService(secret string, ttl time.Duration) *OperatorAuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &OperatorAuthService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken signs a token for operator with role.
func (s *OperatorAuthService) IssueToken(operator, role string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}
	if role != types.RoleAdmin && role != types.RoleViewer {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}

	now := s.now()
	claims := &types.OperatorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks the signature, expiry and issuer of tokenString.
func (s *OperatorAuthService) ValidateToken(tokenString string) (*types.OperatorClaims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &types.OperatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

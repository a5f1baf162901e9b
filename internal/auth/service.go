package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fdg312/mealweek/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrDevAuthOff   = errors.New("dev auth is disabled")
)

// DevUserID is the owner used by POST /v1/auth/dev.
const DevUserID = "dev-user"

const devTokenTTL = 30 * 24 * time.Hour

// ProfileProvisioner creates the owner's profile on first sign-in.
type ProfileProvisioner interface {
	EnsureProfile(ctx context.Context, ownerUserID, email string) error
}

// Service issues and verifies JWTs.
type Service struct {
	config   *config.Config
	profiles ProfileProvisioner
	now      func() time.Time
}

func NewService(cfg *config.Config, profiles ProfileProvisioner) *Service {
	return &Service{
		config:   cfg,
		profiles: profiles,
		now:      time.Now,
	}
}

// IssueToken signs an access token for userID with the configured TTL.
// It returns the token and its lifetime in seconds.
func (s *Service) IssueToken(userID string) (string, int64, error) {
	ttl := time.Duration(s.config.JWTTTLMinutes) * time.Minute
	token, err := s.generateJWTWithTTL(userID, ttl)
	if err != nil {
		return "", 0, err
	}
	return token, int64(ttl.Seconds()), nil
}

// SignInDev issues a token without verifying identity.
func (s *Service) SignInDev(ctx context.Context) (*DevAuthResponse, error) {
	if s.config.AuthMode != config.AuthModeDev {
		return nil, ErrDevAuthOff
	}

	if s.profiles != nil {
		if err := s.profiles.EnsureProfile(ctx, DevUserID, ""); err != nil {
			return nil, fmt.Errorf("ensure dev profile: %w", err)
		}
	}

	token, err := s.generateJWTWithTTL(DevUserID, devTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign dev token: %w", err)
	}

	return &DevAuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(devTokenTTL.Seconds()),
		UserID:      DevUserID,
	}, nil
}

func (s *Service) generateJWTWithTTL(ownerUserID string, ttl time.Duration) (string, error) {
	now := s.now()
	exp := now.Add(ttl)

	claims := jwt.MapClaims{
		"sub": ownerUserID,
		"iss": s.config.JWTIssuer,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// VerifyJWT validates a token and returns its subject.
func (s *Service) VerifyJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithIssuer(s.config.JWTIssuer))

	if err != nil {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

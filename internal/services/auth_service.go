package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"storeadmin/internal/domain"
	"storeadmin/internal/repos"
	"storeadmin/internal/validate"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
	Issuer string
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration, issuer string) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl, Issuer: issuer}
}

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email, ok := validate.Email(email)
	if !ok {
		return nil, domain.Invalid("email", "is not a valid address")
	}
	if name, ok = validate.Text(name, 64); !ok {
		return nil, domain.Invalid("name", "is required")
	}
	if !validate.Password(password) {
		return nil, domain.Invalid("password", "needs 8-20 chars with upper, lower, digit and symbol")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(ctx, email, name, string(h))
}

// Login checks the password, binds the browser session and issues a bearer
// token for API clients.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	if sid != "" {
		if err := s.Users.BindSession(ctx, sid, u.ID); err != nil {
			return nil, "", err
		}
	}
	tok, err := s.Issue(u)
	if err != nil {
		return nil, "", err
	}
	return u, tok, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.Users.SessionUser(ctx, sid)
}

func (s *AuthService) Issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify parses a bearer token and loads its user, so tokens of deleted
// users stop working.
func (s *AuthService) Verify(ctx context.Context, raw string) (*domain.User, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithIssuer(s.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	u, err := s.Users.ByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"brandregistry/internal/common"
	"brandregistry/internal/config"
	"brandregistry/internal/models"
	"brandregistry/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns user credentials and the bearer tokens bound to them.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.TokenResponse, error)
	Resolve(ctx context.Context, tokenString string) (uuid.UUID, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	userRepo   repositories.UserRepository
	secret     []byte
	method     jwt.SigningMethod
	tokenTTL   time.Duration
	bcryptCost int
}

// dummyHash is compared against when login hits an unknown email, so
// the unknown-user and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) (AuthService, error) {
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown JWT signing algorithm %q", cfg.JWTAlgorithm)
	}
	return &authService{
		userRepo:   userRepo,
		secret:     []byte(cfg.JWTSecret),
		method:     method,
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BcryptCost,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with a bcrypt-hashed password. The returned
// user never carries the plaintext.
func (s *authService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, common.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint on email is the final arbiter for
		// concurrent registrations.
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed bearer token. Unknown
// email and wrong password both come back as ErrAuthFailure.
func (s *authService) Login(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	email = normalizeEmail(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, common.ErrAuthFailure
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrAuthFailure
	}

	token, err := s.issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// DeleteAccount removes the user; their brand rows go with them through
// the cascading foreign key. Blobs belonging to those brands stay in
// the object store.
func (s *authService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if repositories.IsNoRows(err) {
			return common.ErrNotFound
		}
		return err
	}
	return nil
}

// Resolve verifies a bearer token and returns the user id it was issued
// for. Malformed tokens, bad signatures, expiry, a non-UUID subject and
// a subject with no matching user all collapse into ErrInvalidToken;
// the caller learns nothing about which check failed.
func (s *authService) Resolve(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{s.method.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, common.ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return uuid.Nil, common.ErrInvalidToken
	}
	return userID, nil
}

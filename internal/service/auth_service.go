package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"metrictracker/internal/auth"
	"metrictracker/internal/cache"
	"metrictracker/internal/clock"
	apperrors "metrictracker/internal/errors"
	"metrictracker/internal/model"
	"metrictracker/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute

	// bcrypt rejects longer inputs.
	maxPasswordBytes = 72
)

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        model.UserSummary
	// Metrics holds the seeded defaults; only set by Register.
	Metrics []model.Metric
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	WhoAmI(ctx context.Context, userID uint) (*model.UserSummary, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	cache      *cache.Client
	clock      clock.Clock
	log        logrus.FieldLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	cache *cache.Client,
	clk clock.Clock,
	log logrus.FieldLogger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		cache:      cache,
		clock:      clk,
		log:        log,
	}
}

func (s *authService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates the user and its default metrics, then signs it in.
func (s *authService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.ErrPasswordTooLong
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	metrics := make([]model.Metric, 0, len(model.DefaultMetrics))
	for _, d := range model.DefaultMetrics {
		metrics = append(metrics, d.NewMetric(0))
	}

	if err := s.userRepo.CreateWithMetrics(ctx, user, metrics); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user registered")

	return &AuthResult{
		AccessToken: token,
		User:        user.Summary(),
		Metrics:     metrics,
	}, nil
}

// Login verifies the credential and issues a token.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.WithField("user_id", user.ID).Warn("login rejected")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("user logged in")

	return &AuthResult{AccessToken: token, User: user.Summary()}, nil
}

// WhoAmI resolves the public summary of the token's user.
func (s *authService) WhoAmI(ctx context.Context, userID uint) (*model.UserSummary, error) {
	var cached model.UserSummary
	if s.cache.GetJSON(ctx, s.cacheKey(userID), &cached) {
		return &cached, nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	summary := user.Summary()
	_ = s.cache.SetJSON(ctx, s.cacheKey(userID), summary, userCacheTTL)
	return &summary, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return apperrors.ErrInvalidToken
	}
	ttl := claims.ExpiresAt.Time.Sub(s.clock.Now())
	if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.WithField("subject", claims.Subject).Info("user logged out")
	return nil
}

// DeleteAccount removes the user and everything it owns.
func (s *authService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(userID))
	s.log.WithField("user_id", userID).Info("user deleted")
	return nil
}

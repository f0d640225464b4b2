package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/minsu/dormisphere/internal/app/models"
	"github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/pkg/apperrors"
	"github.com/minsu/dormisphere/internal/pkg/auth"
	"github.com/minsu/dormisphere/internal/pkg/identity"
)

// identityProvider is the outbound identity-verification dependency
type identityProvider interface {
	FetchProfile(ctx context.Context, token string) (*identity.Profile, error)
	CheckDomain(email string) error
}

// authUserRepo is the user persistence dependency of the auth flow
type authUserRepo interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByExternalID(ctx context.Context, externalID string) (*models.User, error)
}

// LoginResult reports the outcome of a login attempt. SessionToken is
// empty when the caller has not joined yet.
type LoginResult struct {
	Joined       bool
	User         *models.User
	SessionToken string
}

// AuthService defines the interface for login and sign-up operations
type AuthService interface {
	Login(ctx context.Context, providerToken string) (*LoginResult, error)
	Join(ctx context.Context, providerToken, name string) (*LoginResult, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	provider identityProvider
	userRepo authUserRepo
	jwt      *auth.JWTService
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(provider identityProvider, userRepo authUserRepo, jwt *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		provider: provider,
		userRepo: userRepo,
		jwt:      jwt,
		logger:   logger,
	}
}

// verifyProfile runs the outbound identity call and the domain gate
func (s *authServiceImpl) verifyProfile(ctx context.Context, providerToken string) (*identity.Profile, error) {
	profile, err := s.provider.FetchProfile(ctx, providerToken)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidProviderToken) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity verification failed: %w", err)
	}

	if err := s.provider.CheckDomain(profile.Email); err != nil {
		return nil, apperrors.ErrEmailDomainDenied
	}

	return profile, nil
}

// Login verifies the provider token and reports whether the caller has
// joined. Joined callers get a fresh session token.
func (s *authServiceImpl) Login(ctx context.Context, providerToken string) (*LoginResult, error) {
	profile, err := s.verifyProfile(ctx, providerToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByExternalID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &LoginResult{Joined: false}, nil
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing session token: %w", err)
	}

	return &LoginResult{Joined: true, User: user, SessionToken: token}, nil
}

// Join creates an account from the provider profile. The role and the
// student-number fragment are inferred from the school email address.
func (s *authServiceImpl) Join(ctx context.Context, providerToken, name string) (*LoginResult, error) {
	profile, err := s.verifyProfile(ctx, providerToken)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = profile.Name
	}

	user := &models.User{
		ExternalID: profile.ID,
		Email:      profile.Email,
		Name:       name,
		RoleType:   identity.InferRole(profile.Email),
		StuNum:     identity.StudentNumber(profile.Email),
	}

	id, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrUserAlreadyJoined
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	user.ID = id

	token, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("error issuing session token: %w", err)
	}

	s.logger.Info().Int64("userID", id).Str("role", string(user.RoleType)).Msg("New user joined")

	return &LoginResult{Joined: true, User: user, SessionToken: token}, nil
}

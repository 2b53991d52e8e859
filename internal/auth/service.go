package auth

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"notesapi/internal/shared/config"
	"notesapi/internal/users"
	"notesapi/pkg/logger"

	"log/slog"
)

var (
	ErrAccountExists       = errors.New("account already exists")
	ErrInvalidEmail        = errors.New("invalid email")
	ErrEmailNotConfirmed   = errors.New("email not confirmed")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrVerification        = errors.New("verification error")
	ErrCredentialsInvalid  = errors.New("could not validate credentials")
	ErrUserNotFound        = errors.New("user not found")
)

// ConfirmationMailer dispatches the email-confirmation notification.
// Implementations must be safe for concurrent use; delivery is
// best-effort and never blocks the triggering request.
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, email, username, token string) error
}

type Service interface {
	Signup(ctx context.Context, req *SignupRequest) (*users.User, error)
	Login(ctx context.Context, req *LoginRequest) (*TokenPair, error)
	RefreshAccess(ctx context.Context, refreshToken string) (*TokenPair, error)
	ConfirmEmail(ctx context.Context, token string) (alreadyConfirmed bool, err error)
	RequestEmailConfirmation(ctx context.Context, email string) (alreadyConfirmed bool, err error)
	GetCurrentUser(ctx context.Context, accessToken string) (*users.User, error)
}

type service struct {
	repo   Repository
	codec  *TokenCodec
	mailer ConfirmationMailer
	config *config.Config
	log    *logger.Logger
}

func NewService(repo Repository, codec *TokenCodec, mailer ConfirmationMailer, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		codec:  codec,
		mailer: mailer,
		config: cfg,
		log:    logger.GetDefault(),
	}
}

func (s *service) Signup(ctx context.Context, req *SignupRequest) (*users.User, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	digest, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  digest,
		Role:      users.RoleUser,
		Confirmed: false,
		Avatar:    gravatarURL(req.Email),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.dispatchConfirmation(user.Email, user.Username)

	return user, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*TokenPair, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidEmail
		}
		return nil, err
	}
	if !user.Confirmed {
		return nil, ErrEmailNotConfirmed
	}
	if !VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidPassword
	}

	pair, err := s.issueTokenPair(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRefreshToken(ctx, user, &pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// RefreshAccess rotates the token pair. A presented refresh token that
// does not match the stored one is treated as a potential compromise:
// the stored token is cleared so every outstanding refresh token dies.
func (s *service) RefreshAccess(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Decode(refreshToken, ScopeRefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		if err := s.repo.UpdateRefreshToken(ctx, user, nil); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}

	pair, err := s.issueTokenPair(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateRefreshToken(ctx, user, &pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

func (s *service) ConfirmEmail(ctx context.Context, token string) (bool, error) {
	claims, err := s.codec.Decode(token, ScopeNone)
	if err != nil {
		return false, ErrVerification
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, ErrVerification
		}
		return false, err
	}
	if user.Confirmed {
		return true, nil
	}

	if err := s.repo.ConfirmEmail(ctx, user.Email); err != nil {
		return false, err
	}
	return false, nil
}

// RequestEmailConfirmation never reveals whether an account exists:
// a missing user produces the same generic result as a dispatched email.
func (s *service) RequestEmailConfirmation(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}
	if user.Confirmed {
		return true, nil
	}

	s.dispatchConfirmation(user.Email, user.Username)
	return false, nil
}

// GetCurrentUser is the guard behind every protected endpoint.
func (s *service) GetCurrentUser(ctx context.Context, accessToken string) (*users.User, error) {
	claims, err := s.codec.Decode(accessToken, ScopeAccessToken)
	if err != nil {
		return nil, err
	}
	if claims.Subject == "" {
		return nil, ErrCredentialsInvalid
	}

	user, err := s.repo.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrCredentialsInvalid
		}
		return nil, err
	}
	return user, nil
}

func (s *service) issueTokenPair(email string) (*TokenPair, error) {
	accessToken, err := s.codec.Encode(email, ScopeAccessToken, s.config.JWT.AccessExpiresIn)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Encode(email, ScopeRefreshToken, s.config.JWT.RefreshExpiresIn)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// dispatchConfirmation sends the confirmation email out of band.
// A failed dispatch is logged and swallowed; the user can request a
// resend via /auth/request_email.
func (s *service) dispatchConfirmation(email, username string) {
	token, err := s.codec.Encode(email, ScopeNone, s.config.JWT.ConfirmExpiresIn)
	if err != nil {
		s.log.Error("failed to create confirmation token", slog.String("email", email), slog.Any("error", err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.mailer.SendConfirmation(ctx, email, username, token); err != nil {
			s.log.Warn("confirmation email dispatch failed", slog.String("email", email), slog.Any("error", err))
		}
	}()
}

func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon", hex.EncodeToString(sum[:]))
}

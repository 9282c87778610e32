// Package services contains server-side business logic. This file implements
// AuthService: credential verification, session token issuance, and the
// password reset code flow.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/logging"
	"github.com/taskboard-dev/taskboard/internal/server/auth"
	"github.com/taskboard-dev/taskboard/internal/server/config"
	"github.com/taskboard-dev/taskboard/internal/server/models"
	"github.com/taskboard-dev/taskboard/internal/server/store"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	UserID      string
}

// AuthService handles login and the password reset flow.
type AuthService struct {
	store                       store.Gateway
	hasher                      *auth.Hasher
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	resetCodeValidityDuration   time.Duration
	now                         func() time.Time
}

// NewAuthService constructs an AuthService from the record store gateway,
// hasher and server config.
func NewAuthService(gw store.Gateway, hasher *auth.Hasher, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		store:                       gw,
		hasher:                      hasher,
		logger:                      logger,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		resetCodeValidityDuration:   cfg.ResetCodeValidityDuration,
		now:                         time.Now,
	}
}

// findProfileByEmail locates a user profile by scanning the table. O(table
// size); see the gateway notes on the scan contract.
func (s *AuthService) findProfileByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	err := s.store.ScanEquals(ctx, map[string]any{
		"email": email,
		"SK":    store.ProfileSortKey,
	}, &users)
	if err != nil {
		return nil, fmt.Errorf("error searching user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, common.ErrorNotFound
	}
	return &users[0], nil
}

// Login verifies email and password and, on success, returns a session with
// a signed access token. An unknown email and a wrong password both yield
// ErrInvalidCredentials so callers cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {

	user, err := s.findProfileByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordDigest, password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID(), user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	return &Session{AccessToken: token, UserID: user.ID()}, nil
}

// ResetRequest generates a 6-digit reset code for the account with the given
// email and stores it with the configured validity window. Delivery of the
// code is out of scope; it is only logged here.
func (s *AuthService) ResetRequest(ctx context.Context, email string) (*models.ResetCode, error) {

	user, err := s.findProfileByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	code, err := common.MakeRandDigitString(6)
	if err != nil {
		return nil, fmt.Errorf("error generating reset code: %w", err)
	}

	now := s.now().Unix()
	reset := models.NewResetCode(user.ID(), email, code, now, now+int64(s.resetCodeValidityDuration.Seconds()))

	if err := s.store.Put(ctx, reset); err != nil {
		return nil, fmt.Errorf("error storing reset code: %w", err)
	}

	// no mail delivery yet, the code is only visible in the log
	s.logger.Info(ctx, "reset code issued", "email", email, "code", code)

	return reset, nil
}

// ResetValidate checks that the given code exists for the email and has not
// expired.
func (s *AuthService) ResetValidate(ctx context.Context, email, code string) error {

	var codes []models.ResetCode
	err := s.store.ScanEquals(ctx, map[string]any{
		"email": email,
		"SK":    store.ResetKeyPrefix + code,
	}, &codes)
	if err != nil {
		return fmt.Errorf("error searching reset code: %w", err)
	}
	if len(codes) == 0 {
		return common.ErrInvalidCode
	}

	if codes[0].ExpiresAt < s.now().Unix() {
		return common.ErrCodeExpired
	}

	return nil
}

// ResetConfirm overwrites the account's password digest. The current flow
// does not require a previously validated code; see DESIGN.md before
// tightening this.
func (s *AuthService) ResetConfirm(ctx context.Context, email, newPassword string) error {

	user, err := s.findProfileByEmail(ctx, email)
	if err != nil {
		return err
	}

	changes := []update.Change{{Field: "password", Value: s.hasher.Hash(newPassword)}}
	if err := s.store.Update(ctx, user.Key(), changes); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	return nil
}

// Package services contains application services for the ProfileKeeper
// client. This file defines the account service: the handlers behind the
// register, login, profile and logout commands.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/profilekeeper/internal/client/models"
	"github.com/dmitrijs2005/profilekeeper/internal/client/validation"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

// AccountStore is the part of accounts.Store the service depends on.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Register(ctx context.Context, candidate models.Account) error
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
	UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error
}

// SessionMarker records who is signed in.
type SessionMarker interface {
	SignIn(ctx context.Context, email string) error
	CurrentUser(ctx context.Context) (string, bool, error)
	SignOut(ctx context.Context) error
}

// RememberStore keeps a durable remember-me token.
type RememberStore interface {
	Issue(ctx context.Context, email string) error
	Recall(ctx context.Context) (string, error)
	Forget(ctx context.Context) error
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// ProfileInput is the profile edit form. An empty Password keeps the
// current one.
type ProfileInput struct {
	Name     string
	Phone    string
	Address  string
	Password string

	// ExpectedRevision is the revision the form was loaded at. Honored only
	// when the store runs in compare-and-swap mode.
	ExpectedRevision *int64
}

// AccountService defines account operations for the CLI.
//
// Contract:
//   - Register: create an account; does not sign in.
//   - Login: verify credentials, mark the session, optionally remember it.
//   - Current: the signed-in account or common.ErrNotAuthenticated.
//   - SaveProfile / SetAvatar: change the signed-in account.
//   - Logout: clear the session and any remember-me token.
//   - Restore: sign in again from a valid remember-me token.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, email, password string, remember bool) (*models.Account, error)
	Current(ctx context.Context) (*models.Account, error)
	SaveProfile(ctx context.Context, in ProfileInput) error
	SetAvatar(ctx context.Context, avatarURL string) error
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (*models.Account, error)
}

type accountService struct {
	store    AccountStore
	marker   SessionMarker
	remember RememberStore
	log      logging.Logger
}

// NewAccountService wires the account service. A nil logger discards output.
func NewAccountService(store AccountStore, marker SessionMarker, remember RememberStore, log logging.Logger) AccountService {
	if log == nil {
		log = logging.Discard()
	}
	return &accountService{store: store, marker: marker, remember: remember, log: log.With("component", "account-service")}
}

func (s *accountService) Register(ctx context.Context, in RegisterInput) error {
	email := strings.TrimSpace(in.Email)
	if err := validation.Registration(in.Name, email, in.Password); err != nil {
		return err
	}

	acc := models.Account{
		Email:    email,
		Password: in.Password,
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
	}
	return s.store.Register(ctx, acc)
}

// Login checks the email exactly as given; surrounding spaces fail
// validation. Without remember any stored remember-me token is dropped, so a
// previous user is not restored on the next run.
func (s *accountService) Login(ctx context.Context, email, password string, remember bool) (*models.Account, error) {
	if err := validation.Login(email, password); err != nil {
		return nil, err
	}

	acc, err := s.store.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if acc == nil {
		s.log.Warn(ctx, "login rejected", "email", email)
		return nil, common.ErrAuthenticationFailed
	}

	if err := s.marker.SignIn(ctx, acc.Email); err != nil {
		return nil, err
	}
	if remember {
		err = s.remember.Issue(ctx, acc.Email)
	} else {
		err = s.remember.Forget(ctx)
	}
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "signed in", "email", acc.Email, "remember", remember)
	return acc, nil
}

func (s *accountService) Current(ctx context.Context) (*models.Account, error) {
	email, ok, err := s.marker.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrNotAuthenticated
	}

	acc, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		s.log.Warn(ctx, "session points to a missing account", "email", email)
		return nil, common.ErrNotAuthenticated
	}
	return acc, nil
}

func (s *accountService) SaveProfile(ctx context.Context, in ProfileInput) error {
	acc, err := s.Current(ctx)
	if err != nil {
		return err
	}
	if err := validation.Profile(in.Name, acc.Email, in.Password); err != nil {
		return err
	}

	patch := models.ProfilePatch{
		Name:             models.Ptr(strings.TrimSpace(in.Name)),
		Phone:            models.Ptr(strings.TrimSpace(in.Phone)),
		Address:          models.Ptr(strings.TrimSpace(in.Address)),
		ExpectedRevision: in.ExpectedRevision,
	}
	if in.Password != "" {
		patch.Password = models.Ptr(in.Password)
	}
	return s.store.UpdateProfile(ctx, acc.Email, patch)
}

func (s *accountService) SetAvatar(ctx context.Context, avatarURL string) error {
	acc, err := s.Current(ctx)
	if err != nil {
		return err
	}
	return s.store.UpdateProfile(ctx, acc.Email, models.ProfilePatch{AvatarURL: models.Ptr(avatarURL)})
}

func (s *accountService) Logout(ctx context.Context) error {
	if err := s.marker.SignOut(ctx); err != nil {
		return err
	}
	return s.remember.Forget(ctx)
}

// Restore signs in from the remember-me token. A missing, invalid or
// orphaned token yields common.ErrNotAuthenticated; the last two are
// forgotten.
func (s *accountService) Restore(ctx context.Context) (*models.Account, error) {
	email, err := s.remember.Recall(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return nil, common.ErrNotAuthenticated
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		s.log.Info(ctx, "remember token dropped", "reason", err)
		return nil, s.forgetUnauthenticated(ctx)
	case err != nil:
		return nil, err
	}

	acc, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, s.forgetUnauthenticated(ctx)
	}
	if err := s.marker.SignIn(ctx, acc.Email); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *accountService) forgetUnauthenticated(ctx context.Context) error {
	if err := s.remember.Forget(ctx); err != nil {
		return err
	}
	return common.ErrNotAuthenticated
}

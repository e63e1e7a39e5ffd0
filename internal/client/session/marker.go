// Package session keeps track of who is signed in.
//
// Marker holds the session pointer: the email of the signed-in account,
// stored under common.CurrentUserKey in session-scoped storage. It performs
// no lookups in the account store, so the pointer may dangle; consumers must
// treat an email with no matching account as "not signed in".
//
// Remember persists a signed, expiring token in durable storage so a later
// run can sign the same user in without a password.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/storage"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
)

type Marker struct {
	repo storage.Repository
}

func NewMarker(repo storage.Repository) *Marker {
	return &Marker{repo: repo}
}

// SignIn records email as the active session pointer.
func (m *Marker) SignIn(ctx context.Context, email string) error {
	if err := m.repo.Set(ctx, common.CurrentUserKey, []byte(email)); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

// CurrentUser returns the recorded pointer. ok is false when nothing is set.
func (m *Marker) CurrentUser(ctx context.Context) (email string, ok bool, err error) {
	v, err := m.repo.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return "", false, fmt.Errorf("current user: %w", err)
	}
	if len(v) == 0 {
		return "", false, nil
	}
	return string(v), true, nil
}

// SignOut clears the pointer. Signing out twice is not an error.
func (m *Marker) SignOut(ctx context.Context) error {
	if err := m.repo.Delete(ctx, common.CurrentUserKey); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

package accounts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/profilekeeper/internal/client/models"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/storage"
	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/cryptox"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

// Mode selects how concurrent profile updates are reconciled.
type Mode string

const (
	ModeLastWriteWins  Mode = "lww"
	ModeCompareAndSwap Mode = "cas"
)

// ParseMode accepts "lww", "cas" or "" (last-write-wins).
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeLastWriteWins:
		return ModeLastWriteWins, nil
	case ModeCompareAndSwap:
		return ModeCompareAndSwap, nil
	default:
		return "", fmt.Errorf("unknown consistency mode %q", s)
	}
}

type Option func(*Store)

func WithMode(m Mode) Option {
	return func(s *Store) { s.mode = m }
}

func WithPasswordScheme(p cryptox.PasswordScheme) Option {
	return func(s *Store) { s.scheme = p }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store owns the account collection.
type Store struct {
	mu     sync.Mutex
	repo   storage.Repository
	mode   Mode
	scheme cryptox.PasswordScheme
	log    logging.Logger
}

// NewStore returns a last-write-wins store with plaintext passwords unless
// options say otherwise.
func NewStore(repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		repo:   repo,
		mode:   ModeLastWriteWins,
		scheme: cryptox.Plain{},
		log:    logging.Discard(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("component", "accounts")
	return s
}

// LoadAll returns the collection in insertion order. Stored entries that are
// not objects are skipped here but survive later writes. Only storage I/O
// failures are returned as errors.
func (s *Store) LoadAll(ctx context.Context) ([]models.Account, error) {
	raw, err := s.repo.Get(ctx, common.AccountsKey)
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	all := s.decode(ctx, raw)
	list := make([]models.Account, 0, len(all))
	for _, a := range all {
		if a.Opaque == nil {
			list = append(list, a)
		}
	}
	return list, nil
}

// FindByEmail returns the first record with exactly this email, or nil.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	list, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(list, email); i >= 0 {
		a := list[i]
		return &a, nil
	}
	return nil, nil
}

// Register appends candidate unless its email is already taken, in which
// case common.ErrAccountExists is returned and nothing is written.
func (s *Store) Register(ctx context.Context, candidate models.Account) error {
	encoded, err := s.scheme.Encode(candidate.Password)
	if err != nil {
		return fmt.Errorf("encode password: %w", err)
	}
	candidate.Password = encoded
	candidate.Revision = 0
	if s.mode == ModeCompareAndSwap {
		candidate.Revision = 1
	}

	err = s.mutate(ctx, func(list []models.Account) ([]models.Account, error) {
		if indexOf(list, candidate.Email) >= 0 {
			return nil, common.ErrAccountExists
		}
		return append(list, candidate), nil
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "account registered", "email", candidate.Email)
	return nil
}

// Authenticate returns the record matching both email and password, or nil.
// The two failure causes are deliberately indistinguishable.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*models.Account, error) {
	list, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range list {
		if a.Email == email && s.scheme.Verify(a.Password, password) {
			return &a, nil
		}
	}
	s.log.Debug(ctx, "authentication failed", "email", email)
	return nil, nil
}

// UpdateProfile replaces the fields present in patch on the record with this
// email. It returns common.ErrNotFound when there is no such record and, in
// compare-and-swap mode, common.ErrVersionConflict when patch carries a
// stale ExpectedRevision.
func (s *Store) UpdateProfile(ctx context.Context, email string, patch models.ProfilePatch) error {
	if patch.Password != nil && *patch.Password != "" {
		encoded, err := s.scheme.Encode(*patch.Password)
		if err != nil {
			return fmt.Errorf("encode password: %w", err)
		}
		patch.Password = &encoded
	}

	err := s.mutate(ctx, func(list []models.Account) ([]models.Account, error) {
		i := indexOf(list, email)
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", common.ErrNotFound, email)
		}
		rec := &list[i]
		if s.mode == ModeCompareAndSwap {
			if patch.ExpectedRevision != nil && *patch.ExpectedRevision != rec.Revision {
				return nil, fmt.Errorf("%w: %s at revision %d, expected %d",
					common.ErrVersionConflict, email, rec.Revision, *patch.ExpectedRevision)
			}
			rec.Revision++
		}
		patch.Apply(rec)
		return list, nil
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "profile updated", "email", email)
	return nil
}

// mutate runs fn over the current collection and persists its result as one
// write. An error from fn aborts without writing.
func (s *Store) mutate(ctx context.Context, fn func([]models.Account) ([]models.Account, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	update := func(old []byte) ([]byte, error) {
		list, err := fn(s.decode(ctx, old))
		if err != nil {
			return nil, err
		}
		if list == nil {
			list = []models.Account{}
		}
		return json.Marshal(list)
	}

	if u, ok := s.repo.(storage.Updater); ok {
		return u.Update(ctx, common.AccountsKey, update)
	}

	old, err := s.repo.Get(ctx, common.AccountsKey)
	if err != nil {
		return fmt.Errorf("load accounts: %w", err)
	}
	value, err := update(old)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, common.AccountsKey, value)
}

func (s *Store) decode(ctx context.Context, raw []byte) []models.Account {
	list, err := decodeAccounts(raw)
	if err != nil {
		s.log.Warn(ctx, "stored accounts ignored", "error", err)
		return []models.Account{}
	}
	return list
}

// decodeAccounts parses the stored collection. Empty input is an empty
// collection; anything that is not a JSON array is common.ErrMalformedStore.
// Elements are decoded one by one so a single odd record never hides the
// rest.
func decodeAccounts(raw []byte) ([]models.Account, error) {
	list := []models.Account{}
	if len(raw) == 0 {
		return list, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedStore, err)
	}
	for _, e := range elems {
		var a models.Account
		if t := bytes.TrimSpace(e); len(t) == 0 || t[0] != '{' || json.Unmarshal(e, &a) != nil {
			a = models.Account{Opaque: append(json.RawMessage(nil), e...)}
		}
		list = append(list, a)
	}
	return list, nil
}

func indexOf(list []models.Account, email string) int {
	for i := range list {
		if list[i].Opaque == nil && list[i].Email == email {
			return i
		}
	}
	return -1
}

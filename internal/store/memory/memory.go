// Package memory is an in-process store.Store used by tests and the
// STORE_DRIVER=memory development mode. Transactions are serialized by a
// single mutex and roll back by restoring a snapshot.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"github.com/google/uuid"
)

type state struct {
	users         map[uuid.UUID]models.User
	items         map[uuid.UUID]models.Item
	reports       map[uuid.UUID]models.Report
	resolutions   map[uuid.UUID]models.Resolution
	notifications map[uuid.UUID]models.Notification
	refreshTokens map[uuid.UUID]models.RefreshToken
}

func newState() *state {
	return &state{
		users:         make(map[uuid.UUID]models.User),
		items:         make(map[uuid.UUID]models.Item),
		reports:       make(map[uuid.UUID]models.Report),
		resolutions:   make(map[uuid.UUID]models.Resolution),
		notifications: make(map[uuid.UUID]models.Notification),
		refreshTokens: make(map[uuid.UUID]models.RefreshToken),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone copies every table. Rows are values; pointer fields are replaced on
// write and never mutated in place, so sharing them is safe.
func (s *state) clone() *state {
	return &state{
		users:         cloneMap(s.users),
		items:         cloneMap(s.items),
		reports:       cloneMap(s.reports),
		resolutions:   cloneMap(s.resolutions),
		notifications: cloneMap(s.notifications),
		refreshTokens: cloneMap(s.refreshTokens),
	}
}

type Store struct {
	mu   sync.Mutex
	data *state
	last time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: newState()}
}

// repos is bound either to the store (each call takes the lock) or to a
// running transaction (the lock is already held).
type repos struct {
	s    *Store
	inTx bool
}

func (r repos) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

// tick returns a strictly increasing timestamp so newest-first ordering is
// deterministic. Caller holds the lock.
func (s *Store) tick() time.Time {
	now := time.Now()
	if !now.After(s.last) {
		now = s.last.Add(time.Microsecond)
	}
	s.last = now
	return now
}

func (s *Store) root() repos { return repos{s: s} }

func (s *Store) Users() store.UserRepository                 { return userRepo{s.root()} }
func (s *Store) Items() store.ItemRepository                 { return itemRepo{s.root()} }
func (s *Store) Reports() store.ReportRepository             { return reportRepo{s.root()} }
func (s *Store) Resolutions() store.ResolutionRepository     { return resolutionRepo{s.root()} }
func (s *Store) Notifications() store.NotificationRepository { return notificationRepo{s.root()} }
func (s *Store) RefreshTokens() store.RefreshTokenRepository { return refreshTokenRepo{s.root()} }

func (r repos) Users() store.UserRepository                 { return userRepo{r} }
func (r repos) Items() store.ItemRepository                 { return itemRepo{r} }
func (r repos) Reports() store.ReportRepository             { return reportRepo{r} }
func (r repos) Resolutions() store.ResolutionRepository     { return resolutionRepo{r} }
func (r repos) Notifications() store.NotificationRepository { return notificationRepo{r} }
func (r repos) RefreshTokens() store.RefreshTokenRepository { return refreshTokenRepo{r} }

func (s *Store) InTx(ctx context.Context, fn func(tx store.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	err := fn(repos{s: s, inTx: true})
	if err == nil {
		if cerr := ctx.Err(); cerr != nil {
			err = unavailable(cerr)
		}
	}
	if err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

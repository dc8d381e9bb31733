// Package postgres implements store.Store on PostgreSQL through GORM.
package postgres

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements store.Store. Schema is owned by the goose migrations.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

type repos struct {
	db *gorm.DB
}

func (s *Store) Users() store.UserRepository                 { return userRepo{s.db} }
func (s *Store) Items() store.ItemRepository                 { return itemRepo{s.db} }
func (s *Store) Reports() store.ReportRepository             { return reportRepo{s.db} }
func (s *Store) Resolutions() store.ResolutionRepository     { return resolutionRepo{s.db} }
func (s *Store) Notifications() store.NotificationRepository { return notificationRepo{s.db} }
func (s *Store) RefreshTokens() store.RefreshTokenRepository { return refreshTokenRepo{s.db} }

func (r repos) Users() store.UserRepository                 { return userRepo{r.db} }
func (r repos) Items() store.ItemRepository                 { return itemRepo{r.db} }
func (r repos) Reports() store.ReportRepository             { return reportRepo{r.db} }
func (r repos) Resolutions() store.ResolutionRepository     { return resolutionRepo{r.db} }
func (r repos) Notifications() store.NotificationRepository { return notificationRepo{r.db} }
func (r repos) RefreshTokens() store.RefreshTokenRepository { return refreshTokenRepo{r.db} }

// InTx runs fn in one database transaction bound to ctx. Any error, including
// context cancellation, rolls the transaction back.
func (s *Store) InTx(ctx context.Context, fn func(tx store.Repos) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(repos{db: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return translate(err, nil)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return translate(err, nil)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return translate(err, nil)
	}
	return nil
}

func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

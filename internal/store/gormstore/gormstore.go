// Package gormstore implements the store interfaces on PostgreSQL via GORM.
// The vote ledger and score column are only ever written here, inside one
// transaction with the post row locked, so aggregate scores stay consistent
// under concurrent voters.
package gormstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/breddit-app/backend/internal/store"
)

var (
	_ store.PostStore      = (*Store)(nil)
	_ store.CommentStore   = (*Store)(nil)
	_ store.VoteStore      = (*Store)(nil)
	_ store.CommunityStore = (*Store)(nil)
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// cursorCreatedAt resolves the (created_at, id) keyset position of a cursor
// row. The row is looked up regardless of its deleted flag so an item that
// was soft-deleted between pages still anchors the next page.
func (s *Store) cursorCreatedAt(ctx context.Context, table string, id int) (time.Time, error) {
	var row struct{ CreatedAt time.Time }
	err := s.db.WithContext(ctx).Table(table).Select("created_at").Where("id = ?", id).Take(&row).Error
	if err != nil {
		return time.Time{}, translate(err)
	}
	return row.CreatedAt, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	default:
		return err
	}
}

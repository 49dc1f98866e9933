package wishlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store persists wishlists per owner.
type Store interface {
	// Add inserts bookID into owner's wishlist (idempotent).
	Add(ctx context.Context, owner, bookID string) error
	// Remove deletes bookID from owner's wishlist; removing an absent id is not an error.
	Remove(ctx context.Context, owner, bookID string) error
	// Membership returns owner's whole wishlist.
	Membership(ctx context.Context, owner string) (Membership, error)
}

// SQLStore keeps wishlists in the shared SQLite database.
type SQLStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db, now: time.Now}
}

func (s *SQLStore) Add(ctx context.Context, owner, bookID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO wishlist (owner, book_id, added_at) VALUES (?, ?, ?) ON CONFLICT(owner, book_id) DO NOTHING`,
		owner, bookID, s.now().Unix())
	if err != nil {
		return fmt.Errorf("wishlist add %s: %w", bookID, err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, owner, bookID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM wishlist WHERE owner = ? AND book_id = ?`, owner, bookID); err != nil {
		return fmt.Errorf("wishlist remove %s: %w", bookID, err)
	}
	return nil
}

func (s *SQLStore) Membership(ctx context.Context, owner string) (Membership, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT book_id FROM wishlist WHERE owner = ?`, owner)
	if err != nil {
		return Membership{}, fmt.Errorf("wishlist list: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return Membership{}, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return Membership{}, err
	}
	return NewMembership(ids...), nil
}

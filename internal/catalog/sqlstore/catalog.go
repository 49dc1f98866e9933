// Package sqlstore is the local catalog backend: books kept in the shared
// SQLite database and matched by plain substring.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"shelf/internal/catalog"
)

type Catalog struct {
	db *sql.DB
}

func New(db *sql.DB) *Catalog {
	return &Catalog{db: db}
}

// likePattern escapes LIKE wildcards so the query matches literally.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(strings.TrimSpace(q))) + "%"
}

const matchClause = `(title_lower LIKE ? ESCAPE '\' OR authors_lower LIKE ? ESCAPE '\' OR id = ?)`

// Search matches the raw query against title, authors and id, ordered by title then id.
func (c *Catalog) Search(ctx context.Context, query string, from, size int) (*catalog.Page, error) {
	pat := likePattern(query)
	id := strings.TrimSpace(query)

	var total int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books WHERE `+matchClause, pat, pat, id).Scan(&total); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, `
		SELECT id, title, authors, year, description, cover_url, container, filename
		FROM books WHERE `+matchClause+`
		ORDER BY title_lower, id
		LIMIT ? OFFSET ?`, pat, pat, id, size, from)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	page := &catalog.Page{Books: []catalog.Book{}, Total: total, From: from, Size: size}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		page.Books = append(page.Books, *b)
	}
	return page, rows.Err()
}

func (c *Catalog) Get(ctx context.Context, id string) (*catalog.Book, error) {
	row := c.db.QueryRowContext(ctx, `
		SELECT id, title, authors, year, description, cover_url, container, filename
		FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, catalog.ErrNotFound
	}
	return b, err
}

// Upsert writes books in a single transaction, replacing rows with the same id.
func (c *Catalog) Upsert(ctx context.Context, books ...catalog.Book) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO books (id, title, title_lower, authors, authors_lower, year, description, cover_url, container, filename)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			title_lower = excluded.title_lower,
			authors = excluded.authors,
			authors_lower = excluded.authors_lower,
			year = excluded.year,
			description = excluded.description,
			cover_url = excluded.cover_url,
			container = excluded.container,
			filename = excluded.filename`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, b := range books {
		authors := b.Authors
		if authors == nil {
			authors = []string{}
		}
		aj, err := json.Marshal(authors)
		if err != nil {
			return fmt.Errorf("marshal authors of %s: %w", b.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			b.ID, b.Title, strings.ToLower(b.Title),
			string(aj), strings.ToLower(strings.Join(authors, " ")),
			b.Year, b.Description, b.CoverURL, b.Container, b.Filename,
		); err != nil {
			return fmt.Errorf("upsert %s: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (*catalog.Book, error) {
	var (
		b       catalog.Book
		authors string
	)
	if err := s.Scan(&b.ID, &b.Title, &authors, &b.Year, &b.Description, &b.CoverURL, &b.Container, &b.Filename); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(authors), &b.Authors); err != nil {
		return nil, fmt.Errorf("decode authors of %s: %w", b.ID, err)
	}
	return &b, nil
}

// Package feed stores the shared image feed: posts with a data-URI
// image and a caption, joined with the author on read.
package feed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

type (
	Post struct {
		ID      int64
		UserID  int64
		Image   string // data-URI
		Caption string

		// populated by the listing queries
		Username  string
		UserImage string
	}

	Store struct {
		db *sql.DB
	}
)

// New prepares the posts table on the given database.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	_, err := db.ExecContext(ctx, `create table if not exists posts(
		id integer primary key autoincrement,
		user_id integer not null references users(id),
		img text not null,
		img_hash64 integer not null,
		text text not null)`)
	if err != nil {
		return nil, fmt.Errorf("unable to create posts table, cause %w", err)
	}
	return &Store{db: db}, nil
}

// Insert adds a post to the feed. A browser refresh after submitting
// the upload form re-sends the same multipart body; when the newest
// post by this user carries the same image hash and caption, the
// duplicate is dropped and the existing id returned.
func (s *Store) Insert(ctx context.Context, userID int64, image, caption string) (int64, error) {
	hash := int64(xxhash.Sum64String(image))
	row := s.db.QueryRowContext(ctx,
		`select id from posts where user_id = ? and img_hash64 = ? and text = ?
		 order by id desc limit 1`, userID, hash, caption)
	var existing int64
	switch err := row.Scan(&existing); {
	case err == nil:
		return existing, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, fmt.Errorf("unable to check for duplicate post, cause %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`insert into posts(user_id, img, img_hash64, text) values (?, ?, ?, ?)`,
		userID, image, hash, caption)
	if err != nil {
		return 0, fmt.Errorf("unable to insert post, cause %w", err)
	}
	return res.LastInsertId()
}

// ByUser lists a single user's posts, newest first.
func (s *Store) ByUser(ctx context.Context, userID int64) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`select p.id, p.user_id, p.img, p.text, u.username
		 from posts p join users u on p.user_id = u.id
		 where p.user_id = ? order by p.id desc`, userID)
	if err != nil {
		return nil, fmt.Errorf("unable to list posts for user %v, cause %w", userID, err)
	}
	defer rows.Close()
	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Image, &p.Caption, &p.Username); err != nil {
			return nil, fmt.Errorf("unable to scan post, cause %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// All lists the whole feed, newest first, with author name and
// profile picture attached to each post.
func (s *Store) All(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`select p.id, p.user_id, p.img, p.text, u.username, u.img
		 from posts p join users u on p.user_id = u.id
		 order by p.id desc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list feed, cause %w", err)
	}
	defer rows.Close()
	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Image, &p.Caption, &p.Username, &p.UserImage); err != nil {
			return nil, fmt.Errorf("unable to scan post, cause %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

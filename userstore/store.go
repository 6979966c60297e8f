// Package userstore is the credential store: one sqlite row per
// registered user. Username is the sole lookup key for login and is
// immutable after creation; the password digest is opaque to this
// package and never compared here.
package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type (
	User struct {
		ID             int64
		Username       string
		Email          string
		PasswordDigest string
		Image          string // data-URI blob, empty when the user never uploaded one
	}

	Store struct {
		db *sql.DB
	}
)

// New prepares the users table on the given database. Safe to call on
// every startup.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	_, err := db.ExecContext(ctx, `create table if not exists users(
		id integer primary key autoincrement,
		username text not null unique,
		email text not null unique,
		password_digest text not null,
		img text not null default '')`)
	if err != nil {
		return nil, fmt.Errorf("unable to create users table, cause %w", err)
	}
	return &Store{db: db}, nil
}

// FindByUsername returns the user with the given username or NotFound.
// The unique index guarantees 0 or 1 rows.
func (s *Store) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, username, email, password_digest, img from users where username = ?`, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordDigest, &u.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NotFound{Username: username}
	} else if err != nil {
		return nil, fmt.Errorf("unable to load user %v, cause %w", username, err)
	}
	return &u, nil
}

// Insert registers a new user and returns its id. Duplicate username
// or email surfaces as Conflict.
func (s *Store) Insert(ctx context.Context, username, email, digest, image string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`insert into users(username, email, password_digest, img) values (?, ?, ?, ?)`,
		username, email, digest, image)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, Conflict{Username: username, Email: email}
		}
		return 0, fmt.Errorf("unable to insert user %v, cause %w", username, err)
	}
	return res.LastInsertId()
}

// UpdateImage replaces the stored profile picture and returns the
// value now persisted. NotFound when the id does not exist.
func (s *Store) UpdateImage(ctx context.Context, userID int64, image string) (string, error) {
	res, err := s.db.ExecContext(ctx, `update users set img = ? where id = ?`, image, userID)
	if err != nil {
		return "", fmt.Errorf("unable to update image for user %v, cause %w", userID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", NotFound{ID: userID}
	}
	return image, nil
}

// sqlite reports constraint violations only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

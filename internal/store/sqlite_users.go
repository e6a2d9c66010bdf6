package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateUser inserts a new user. The ID and CreatedAt fields are assigned
// here; Email is stored lowercased.
func (s *SQLiteStore) CreateUser(u *User) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	u.ID = generateID()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO users (id, email, name, company, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.Company, u.PasswordHash, u.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStore) GetUser(id string) (*User, error) {
	return s.scanUser(`SELECT id, email, name, company, password_hash, created_at
		FROM users WHERE id = ?`, id)
}

// GetUserByEmail retrieves a user by email (case-insensitive).
func (s *SQLiteStore) GetUserByEmail(email string) (*User, error) {
	return s.scanUser(`SELECT id, email, name, company, password_hash, created_at
		FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
}

func (s *SQLiteStore) scanUser(query string, arg any) (*User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	u := &User{}
	err := s.db.QueryRow(query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.Company, &u.PasswordHash, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users ordered by creation time.
func (s *SQLiteStore) ListUsers() ([]*User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`SELECT id, email, name, company, password_hash, created_at
		FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Company, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

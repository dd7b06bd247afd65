package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finsight/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO finsight.users (username, email, full_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	var createdAt time.Time
	err := r.db.QueryRow(query, user.Username, user.Email, user.FullName, user.PasswordHash).
		Scan(&user.ID, &createdAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s: %w", user.Username, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(username string) (*models.User, error) {
	return r.findUser(`WHERE username = $1`, username)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	return r.findUser(`WHERE id = $1`, id)
}

func (r *Repository) findUser(where string, arg any) (*models.User, error) {
	user := &models.User{}
	var createdAt time.Time
	query := `
		SELECT id, username, email, full_name, password_hash, created_at
		FROM finsight.users ` + where
	err := r.db.QueryRow(query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.FullName, &user.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)
	return user, nil
}

// ListUsers returns every registered user
func (r *Repository) ListUsers() ([]models.User, error) {
	rows, err := r.db.Query(`
		SELECT id, username, email, full_name, created_at
		FROM finsight.users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var createdAt time.Time
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.CreatedAt = createdAt.Format(time.RFC3339)
		users = append(users, u)
	}
	return users, rows.Err()
}

// Package identity holds the users allowed to sign in to the back office.
package identity

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/erp/accounting/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role is the coarse permission group of a user
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleAccountant Role = "ACCOUNTANT"
)

// Password cost for bcrypt
const bcryptCost = 12

// User is an operator account
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	FullName     string
	Role         Role
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a user with a hashed password
func NewUser(username, password, fullName string, role Role) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.NewInvalidInput("username cannot be empty")
	}
	if utf8.RuneCountInString(username) > 50 {
		return nil, shared.NewInvalidInput("username cannot exceed 50 characters")
	}
	if role == "" {
		role = RoleAccountant
	}
	if role != RoleAdmin && role != RoleAccountant {
		return nil, shared.NewInvalidInput("role must be ADMIN or ACCOUNTANT")
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New(),
		Username:  username,
		FullName:  strings.TrimSpace(fullName),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string) error {
	if n := utf8.RuneCountInString(password); n < 6 || n > 100 {
		return shared.NewInvalidInput("password must be 6 to 100 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin stamps a successful sign-in
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
}

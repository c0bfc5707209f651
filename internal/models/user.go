package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	PasswordHash string          `json:"-"`
	HexColorHash *string         `json:"-"`
	Role         string          `json:"role"`
	Saldo        decimal.Decimal `json:"saldo"`
	AvatarID     int             `json:"avatar_id"`
	Bio          string          `json:"bio"`
	IsActive     bool            `json:"is_active"`
	LastLogin    *time.Time      `json:"last_login,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return errors.New("username too short")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("invalid email")
	}
	if len(u.FullName) > 255 {
		return errors.New("full name too long")
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// PublicUser is the slim projection returned by friend search/list and the
// admin user listing. Never carries saldo or hashes.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	AvatarID int    `json:"avatar_id"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, AvatarID: u.AvatarID}
}

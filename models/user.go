package models

import (
	"time"

	"github.com/google/uuid"
)

// StaffRole gates which back-office pages a staff member can reach
type StaffRole string

const (
	RoleAdmin     StaffRole = "admin"
	RoleScheduler StaffRole = "scheduler"
	RoleAccounts  StaffRole = "accounts"
)

// User represents a back-office staff account
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Role         StaffRole `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a cleaning team on the roster. GSTRegistered drives the
// surcharge applied when invoicing work done by the team.
type Team struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	LeaderName    string    `json:"leader_name"`
	Phone         string    `json:"phone,omitempty"`
	MemberCount   int       `json:"member_count"`
	GSTRegistered bool      `json:"gst_registered"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

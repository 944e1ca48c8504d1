package models

import (
	"time"

	"github.com/google/uuid"
)

// WorkOrderStatus represents the lifecycle state of a work order
type WorkOrderStatus string

const (
	OrderStatusDraft      WorkOrderStatus = "draft"
	OrderStatusScheduled  WorkOrderStatus = "scheduled"
	OrderStatusInProgress WorkOrderStatus = "in_progress"
	OrderStatusCompleted  WorkOrderStatus = "completed"
	OrderStatusInvoiced   WorkOrderStatus = "invoiced"
	OrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrder represents one booked cleaning job. ServiceAddress is the
// formatted address chosen from validation; AddressSource records which
// pipeline stage produced it so unverified addresses can be flagged.
type WorkOrder struct {
	ID             uuid.UUID       `json:"id"`
	CustomerName   string          `json:"customer_name"`
	CustomerPhone  string          `json:"customer_phone,omitempty"`
	ServiceAddress string          `json:"service_address"`
	AddressSource  string          `json:"address_source"`
	ServiceType    string          `json:"service_type"`
	Hours          float64         `json:"hours"`
	TeamID         *uuid.UUID      `json:"team_id,omitempty"`
	Status         WorkOrderStatus `json:"status"`
	ScheduledAt    *time.Time      `json:"scheduled_at,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
}

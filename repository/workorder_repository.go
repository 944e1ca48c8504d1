package repository

import (
	"context"
	"fmt"

	"cleanops-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WorkOrderRepository handles database operations for work orders
type WorkOrderRepository struct {
	db *pgxpool.Pool
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *pgxpool.Pool) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

// Create creates a new work order
func (r *WorkOrderRepository) Create(ctx context.Context, order *models.WorkOrder) error {
	query := `
		INSERT INTO work_orders (
			customer_name, customer_phone, service_address, address_source,
			service_type, hours, team_id, status, scheduled_at, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		order.CustomerName,
		order.CustomerPhone,
		order.ServiceAddress,
		order.AddressSource,
		order.ServiceType,
		order.Hours,
		order.TeamID,
		order.Status,
		order.ScheduledAt,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)

	return err
}

// GetByID retrieves a work order by ID
func (r *WorkOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error) {
	order := &models.WorkOrder{}
	query := `
		SELECT id, customer_name, customer_phone, service_address, address_source,
			service_type, hours, team_id, status, scheduled_at, notes,
			created_at, updated_at, completed_at
		FROM work_orders
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.ServiceAddress,
		&order.AddressSource,
		&order.ServiceType,
		&order.Hours,
		&order.TeamID,
		&order.Status,
		&order.ScheduledAt,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return order, nil
}

// Update updates a work order
func (r *WorkOrderRepository) Update(ctx context.Context, order *models.WorkOrder) error {
	query := `
		UPDATE work_orders SET
			customer_name = $2,
			customer_phone = $3,
			service_address = $4,
			address_source = $5,
			service_type = $6,
			hours = $7,
			team_id = $8,
			status = $9,
			scheduled_at = $10,
			notes = $11,
			completed_at = $12,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.ServiceAddress,
		order.AddressSource,
		order.ServiceType,
		order.Hours,
		order.TeamID,
		order.Status,
		order.ScheduledAt,
		order.Notes,
		order.CompletedAt,
	).Scan(&order.UpdatedAt)

	return err
}

// List retrieves work orders filtered by status and/or team
func (r *WorkOrderRepository) List(ctx context.Context, status *models.WorkOrderStatus, teamID *uuid.UUID, limit, offset int) ([]*models.WorkOrder, error) {
	query := `
		SELECT id, customer_name, customer_phone, service_address, address_source,
			service_type, hours, team_id, status, scheduled_at, notes,
			created_at, updated_at, completed_at
		FROM work_orders
		WHERE 1=1`

	args := []interface{}{}
	argIndex := 1

	if status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, *status)
		argIndex++
	}

	if teamID != nil {
		query += fmt.Sprintf(" AND team_id = $%d", argIndex)
		args = append(args, *teamID)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, limit)
		argIndex++
		if offset > 0 {
			query += fmt.Sprintf(" OFFSET $%d", argIndex)
			args = append(args, offset)
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.WorkOrder
	for rows.Next() {
		order := &models.WorkOrder{}
		err := rows.Scan(
			&order.ID,
			&order.CustomerName,
			&order.CustomerPhone,
			&order.ServiceAddress,
			&order.AddressSource,
			&order.ServiceType,
			&order.Hours,
			&order.TeamID,
			&order.Status,
			&order.ScheduledAt,
			&order.Notes,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

package repository

import (
	"context"

	"cleanops-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InvoiceRepository handles database operations for invoices
type InvoiceRepository struct {
	db *pgxpool.Pool
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Create creates a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (
			work_order_id, number, lines, subtotal, gst_amount, total,
			document_key, issued_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		invoice.WorkOrderID,
		invoice.Number,
		invoice.Lines,
		invoice.Subtotal,
		invoice.GSTAmount,
		invoice.Total,
		invoice.DocumentKey,
		invoice.IssuedAt,
	).Scan(&invoice.ID, &invoice.CreatedAt)

	return err
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `
		SELECT id, work_order_id, number, lines, subtotal, gst_amount, total,
			document_key, issued_at, created_at
		FROM invoices
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.WorkOrderID,
		&invoice.Number,
		&invoice.Lines,
		&invoice.Subtotal,
		&invoice.GSTAmount,
		&invoice.Total,
		&invoice.DocumentKey,
		&invoice.IssuedAt,
		&invoice.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// GetByWorkOrderID retrieves the invoice raised for a work order
func (r *InvoiceRepository) GetByWorkOrderID(ctx context.Context, workOrderID uuid.UUID) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	query := `
		SELECT id, work_order_id, number, lines, subtotal, gst_amount, total,
			document_key, issued_at, created_at
		FROM invoices
		WHERE work_order_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.QueryRow(ctx, query, workOrderID).Scan(
		&invoice.ID,
		&invoice.WorkOrderID,
		&invoice.Number,
		&invoice.Lines,
		&invoice.Subtotal,
		&invoice.GSTAmount,
		&invoice.Total,
		&invoice.DocumentKey,
		&invoice.IssuedAt,
		&invoice.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// NextNumber allocates the next invoice number from a sequence
func (r *InvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	var number string
	err := r.db.QueryRow(ctx, `SELECT 'INV-' || LPAD(nextval('invoice_number_seq')::text, 6, '0')`).Scan(&number)
	if err != nil {
		return "", err
	}
	return number, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"cleanops-backend/models"
	"cleanops-backend/repository"
	"cleanops-backend/storage"

	"github.com/google/uuid"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrOrderNotCompleted  = errors.New("work order is not completed")
	ErrUnknownServiceType = errors.New("unknown service type")
)

const (
	gstRate        = 0.10
	bookingFeeRate = 0.15
)

// hourlyRates is the fixed pricing table per service type
var hourlyRates = map[string]float64{
	"standard":     55.0,
	"deep":         75.0,
	"end_of_lease": 85.0,
	"carpet":       65.0,
	"windows":      60.0,
}

// InvoiceService raises invoices for completed work orders
type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	orderRepo   *repository.WorkOrderRepository
	teamRepo    *repository.TeamRepository
	documents   storage.Storage
}

// InvoiceServiceOption is a functional option for InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// InvoiceWithInvoiceRepository sets the invoice repository
func InvoiceWithInvoiceRepository(repo *repository.InvoiceRepository) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.invoiceRepo = repo
	}
}

// InvoiceWithWorkOrderRepository sets the work order repository
func InvoiceWithWorkOrderRepository(repo *repository.WorkOrderRepository) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.orderRepo = repo
	}
}

// InvoiceWithTeamRepository sets the team repository
func InvoiceWithTeamRepository(repo *repository.TeamRepository) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.teamRepo = repo
	}
}

// InvoiceWithDocumentStorage sets the document storage backend
func InvoiceWithDocumentStorage(documents storage.Storage) InvoiceServiceOption {
	return func(s *InvoiceService) {
		s.documents = documents
	}
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(opts ...InvoiceServiceOption) *InvoiceService {
	s := &InvoiceService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeCharges builds the invoice lines for a job: labor at the service
// type's hourly rate plus the booking fee, with GST added only when the
// team doing the work is GST-registered.
func ComputeCharges(serviceType string, hours float64, gstRegistered bool) (models.InvoiceLines, float64, float64, float64, error) {
	rate, ok := hourlyRates[serviceType]
	if !ok {
		return nil, 0, 0, 0, ErrUnknownServiceType
	}

	labor := roundCents(hours * rate)
	bookingFee := roundCents(labor * bookingFeeRate)

	lines := models.InvoiceLines{
		{
			Description: fmt.Sprintf("%s cleaning (%.1f hours)", strings.ReplaceAll(serviceType, "_", " "), hours),
			Quantity:    hours,
			UnitPrice:   rate,
			Amount:      labor,
		},
		{
			Description: "Booking fee",
			Quantity:    1,
			UnitPrice:   bookingFee,
			Amount:      bookingFee,
		},
	}

	subtotal := roundCents(labor + bookingFee)
	gst := 0.0
	if gstRegistered {
		gst = roundCents(subtotal * gstRate)
	}
	total := roundCents(subtotal + gst)

	return lines, subtotal, gst, total, nil
}

func roundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// GenerateInvoice raises an invoice for a completed work order, renders
// the receipt document, stores it, and marks the order invoiced.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, workOrderID uuid.UUID) (*models.Invoice, error) {
	if s.invoiceRepo == nil || s.orderRepo == nil {
		return nil, errors.New("repositories not set")
	}

	order, err := s.orderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, ErrWorkOrderNotFound
	}
	if order.Status != models.OrderStatusCompleted {
		return nil, ErrOrderNotCompleted
	}

	gstRegistered := false
	if order.TeamID != nil && s.teamRepo != nil {
		team, err := s.teamRepo.GetByID(ctx, *order.TeamID)
		if err != nil {
			log.Printf("Warning: failed to look up team for GST status: %v", err)
		} else {
			gstRegistered = team.GSTRegistered
		}
	}

	lines, subtotal, gst, total, err := ComputeCharges(order.ServiceType, order.Hours, gstRegistered)
	if err != nil {
		return nil, err
	}

	number, err := s.invoiceRepo.NextNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	invoice := &models.Invoice{
		WorkOrderID: order.ID,
		Number:      number,
		Lines:       lines,
		Subtotal:    subtotal,
		GSTAmount:   gst,
		Total:       total,
		IssuedAt:    time.Now(),
	}

	if s.documents != nil {
		docID := uuid.New()
		document := renderReceipt(invoice, order)
		key, err := s.documents.Upload(ctx, docID, invoice.Number+".txt", strings.NewReader(document))
		if err != nil {
			log.Printf("Warning: failed to store receipt document: %v", err)
		} else {
			invoice.DocumentKey = &key
		}
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	order.Status = models.OrderStatusInvoiced
	if err := s.orderRepo.Update(ctx, order); err != nil {
		log.Printf("Warning: invoice %s raised but order status update failed: %v", invoice.Number, err)
	}

	return invoice, nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	if s.invoiceRepo == nil {
		return nil, errors.New("invoice repository not set")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// GetInvoiceForWorkOrder retrieves the invoice raised for a work order
func (s *InvoiceService) GetInvoiceForWorkOrder(ctx context.Context, workOrderID uuid.UUID) (*models.Invoice, error) {
	if s.invoiceRepo == nil {
		return nil, errors.New("invoice repository not set")
	}

	invoice, err := s.invoiceRepo.GetByWorkOrderID(ctx, workOrderID)
	if err != nil {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// renderReceipt assembles the plain-text receipt document
func renderReceipt(invoice *models.Invoice, order *models.WorkOrder) string {
	var builder strings.Builder

	builder.WriteString("TAX INVOICE / RECEIPT\n\n")
	builder.WriteString(fmt.Sprintf("Invoice: %s\n", invoice.Number))
	builder.WriteString(fmt.Sprintf("Issued:  %s\n\n", invoice.IssuedAt.Format("2 January 2006")))

	builder.WriteString(fmt.Sprintf("Customer: %s\n", order.CustomerName))
	builder.WriteString(fmt.Sprintf("Address:  %s\n", order.ServiceAddress))
	if order.AddressSource != "llm" {
		builder.WriteString("          (address as supplied, not verified)\n")
	}
	builder.WriteString("\n")

	for _, line := range invoice.Lines {
		builder.WriteString(fmt.Sprintf("%-40s $%10.2f\n", line.Description, line.Amount))
	}
	builder.WriteString(fmt.Sprintf("%-40s $%10.2f\n", "Subtotal", invoice.Subtotal))
	if invoice.GSTAmount > 0 {
		builder.WriteString(fmt.Sprintf("%-40s $%10.2f\n", "GST (10%)", invoice.GSTAmount))
	}
	builder.WriteString(fmt.Sprintf("%-40s $%10.2f\n", "Total", invoice.Total))

	return builder.String()
}

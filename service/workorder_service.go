package service

import (
	"context"
	"errors"
	"log"
	"time"

	"cleanops-backend/address"
	"cleanops-backend/models"
	"cleanops-backend/repository"

	"github.com/google/uuid"
)

var (
	ErrWorkOrderNotFound = errors.New("work order not found")
	ErrTeamNotFound      = errors.New("team not found")
	ErrTeamInactive      = errors.New("team is not active")
	ErrMissingCustomer   = errors.New("work order missing customer name")
	ErrMissingAddress    = errors.New("work order missing service address")
	ErrInvalidTransition = errors.New("invalid work order status transition")
	ErrOrderCreateFailed = errors.New("failed to create work order")
)

// AddressValidator resolves raw address text into ranked candidates.
// Satisfied by *address.Validator.
type AddressValidator interface {
	Validate(ctx context.Context, raw string) []address.Candidate
}

// WorkOrderService handles work order lifecycle logic
type WorkOrderService struct {
	orderRepo *repository.WorkOrderRepository
	teamRepo  *repository.TeamRepository
	validator AddressValidator
}

// WorkOrderServiceOption is a functional option for WorkOrderService
type WorkOrderServiceOption func(*WorkOrderService)

// OrderWithWorkOrderRepository sets the work order repository
func OrderWithWorkOrderRepository(repo *repository.WorkOrderRepository) WorkOrderServiceOption {
	return func(s *WorkOrderService) {
		s.orderRepo = repo
	}
}

// OrderWithTeamRepository sets the team repository
func OrderWithTeamRepository(repo *repository.TeamRepository) WorkOrderServiceOption {
	return func(s *WorkOrderService) {
		s.teamRepo = repo
	}
}

// OrderWithAddressValidator sets the address validator
func OrderWithAddressValidator(validator AddressValidator) WorkOrderServiceOption {
	return func(s *WorkOrderService) {
		s.validator = validator
	}
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(opts ...WorkOrderServiceOption) *WorkOrderService {
	s := &WorkOrderService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateWorkOrderRequest represents a request to book a cleaning job
type CreateWorkOrderRequest struct {
	CustomerName  string
	CustomerPhone string
	RawAddress    string
	ServiceType   string
	Hours         float64
	ScheduledAt   *time.Time
	Notes         *string
}

// CreateWorkOrderResult carries the created order plus the address
// candidates that were considered, so the UI can offer alternatives and
// flag unverified addresses.
type CreateWorkOrderResult struct {
	Order      *models.WorkOrder
	Candidates []address.Candidate
}

// CreateWorkOrder books a new job. The service address is resolved through
// the validation pipeline; the top-ranked candidate becomes the stored
// address and its validation source is recorded alongside.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (*CreateWorkOrderResult, error) {
	if s.orderRepo == nil {
		return nil, errors.New("work order repository not set")
	}
	if req.CustomerName == "" {
		return nil, ErrMissingCustomer
	}
	if req.RawAddress == "" {
		return nil, ErrMissingAddress
	}

	serviceAddress := req.RawAddress
	addressSource := string(address.SourceUserInput)
	var candidates []address.Candidate

	if s.validator != nil {
		candidates = s.validator.Validate(ctx, req.RawAddress)
		if len(candidates) > 0 {
			serviceAddress = candidates[0].FormattedAddress
			addressSource = string(candidates[0].Source)
		}
	}
	if addressSource != string(address.SourceLLM) {
		log.Printf("Warning: service address for %s stored unverified (source: %s)", req.CustomerName, addressSource)
	}

	status := models.OrderStatusDraft
	if req.ScheduledAt != nil {
		status = models.OrderStatusScheduled
	}

	order := &models.WorkOrder{
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ServiceAddress: serviceAddress,
		AddressSource:  addressSource,
		ServiceType:    req.ServiceType,
		Hours:          req.Hours,
		Status:         status,
		ScheduledAt:    req.ScheduledAt,
		Notes:          req.Notes,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, ErrOrderCreateFailed
	}

	return &CreateWorkOrderResult{
		Order:      order,
		Candidates: candidates,
	}, nil
}

// GetWorkOrder retrieves a work order by ID
func (s *WorkOrderService) GetWorkOrder(ctx context.Context, id uuid.UUID) (*models.WorkOrder, error) {
	if s.orderRepo == nil {
		return nil, errors.New("work order repository not set")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrWorkOrderNotFound
	}
	return order, nil
}

// AssignTeam assigns an active team to a work order and schedules it
func (s *WorkOrderService) AssignTeam(ctx context.Context, orderID, teamID uuid.UUID) (*models.WorkOrder, error) {
	if s.orderRepo == nil || s.teamRepo == nil {
		return nil, errors.New("repositories not set")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrWorkOrderNotFound
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}
	if !team.Active {
		return nil, ErrTeamInactive
	}

	order.TeamID = &team.ID
	if order.Status == models.OrderStatusDraft {
		order.Status = models.OrderStatusScheduled
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CanTransition reports whether a work order may move between two states
func CanTransition(from, to models.WorkOrderStatus) bool {
	allowed := map[models.WorkOrderStatus][]models.WorkOrderStatus{
		models.OrderStatusDraft:      {models.OrderStatusScheduled, models.OrderStatusCancelled},
		models.OrderStatusScheduled:  {models.OrderStatusInProgress, models.OrderStatusCancelled},
		models.OrderStatusInProgress: {models.OrderStatusCompleted, models.OrderStatusCancelled},
		models.OrderStatusCompleted:  {models.OrderStatusInvoiced},
	}
	for _, next := range allowed[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a work order through its lifecycle
func (s *WorkOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, to models.WorkOrderStatus) (*models.WorkOrder, error) {
	if s.orderRepo == nil {
		return nil, errors.New("work order repository not set")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, ErrWorkOrderNotFound
	}

	if !CanTransition(order.Status, to) {
		return nil, ErrInvalidTransition
	}

	order.Status = to
	if to == models.OrderStatusCompleted {
		now := time.Now()
		order.CompletedAt = &now
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ListWorkOrders retrieves work orders with optional filters
func (s *WorkOrderService) ListWorkOrders(ctx context.Context, status *models.WorkOrderStatus, teamID *uuid.UUID, limit, offset int) ([]*models.WorkOrder, error) {
	if s.orderRepo == nil {
		return nil, errors.New("work order repository not set")
	}
	return s.orderRepo.List(ctx, status, teamID, limit, offset)
}

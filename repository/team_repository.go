package repository

import (
	"context"

	"cleanops-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamRepository handles database operations for cleaning teams
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create creates a new team
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, leader_name, phone, member_count, gst_registered, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		team.Name,
		team.LeaderName,
		team.Phone,
		team.MemberCount,
		team.GSTRegistered,
		team.Active,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)

	return err
}

// GetByID retrieves a team by ID
func (r *TeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team := &models.Team{}
	query := `
		SELECT id, name, leader_name, phone, member_count, gst_registered, active,
			created_at, updated_at
		FROM teams
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.LeaderName,
		&team.Phone,
		&team.MemberCount,
		&team.GSTRegistered,
		&team.Active,
		&team.CreatedAt,
		&team.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return team, nil
}

// Update updates a team
func (r *TeamRepository) Update(ctx context.Context, team *models.Team) error {
	query := `
		UPDATE teams SET
			name = $2,
			leader_name = $3,
			phone = $4,
			member_count = $5,
			gst_registered = $6,
			active = $7,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(
		ctx, query,
		team.ID,
		team.Name,
		team.LeaderName,
		team.Phone,
		team.MemberCount,
		team.GSTRegistered,
		team.Active,
	).Scan(&team.UpdatedAt)

	return err
}

// List retrieves teams, optionally restricted to active ones
func (r *TeamRepository) List(ctx context.Context, activeOnly bool) ([]*models.Team, error) {
	query := `
		SELECT id, name, leader_name, phone, member_count, gst_registered, active,
			created_at, updated_at
		FROM teams`

	if activeOnly {
		query += " WHERE active = true"
	}
	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		err := rows.Scan(
			&team.ID,
			&team.Name,
			&team.LeaderName,
			&team.Phone,
			&team.MemberCount,
			&team.GSTRegistered,
			&team.Active,
			&team.CreatedAt,
			&team.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

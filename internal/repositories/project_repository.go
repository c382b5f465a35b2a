package repositories

import (
	"context"
	"errors"

	"ops-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProjectRepository struct {
	DB *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

// Get retrieves a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id int) (*models.Project, error) {
	var p models.Project
	err := r.DB.QueryRow(ctx,
		`SELECT id, name, client_name, client_contact, location, contract_value,
		        overhead_estimate, other_estimate, status, created_at, updated_at
		 FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.ClientName, &p.ClientContact, &p.Location,
		&p.ContractValue, &p.OverheadEstimate, &p.OtherEstimate, &p.Status,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Source fetches the project and every allocation that feeds cost estimates.
// Fetches are sequential; per-project row counts are small enough that
// fan-out would buy nothing.
func (r *ProjectRepository) Source(ctx context.Context, projectID int) (*models.ProjectSource, error) {
	project, err := r.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	src := &models.ProjectSource{Project: project}

	rows, err := r.DB.Query(ctx,
		`SELECT id, project_id, role, headcount, day_rate, days
		 FROM project_crew WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var c models.CrewAssignment
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Role, &c.Headcount, &c.DayRate, &c.Days); err != nil {
			rows.Close()
			return nil, err
		}
		src.Crew = append(src.Crew, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx,
		`SELECT id, project_id, vehicle, trips, rate_per_trip
		 FROM project_transport WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var t models.TransportAssignment
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Vehicle, &t.Trips, &t.RatePerTrip); err != nil {
			rows.Close()
			return nil, err
		}
		src.Transport = append(src.Transport, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx,
		`SELECT id, project_id, description, quantity, unit_cost
		 FROM project_materials WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var m models.MaterialAllocation
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Description, &m.Quantity, &m.UnitCost); err != nil {
			rows.Close()
			return nil, err
		}
		src.Materials = append(src.Materials, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = r.DB.Query(ctx,
		`SELECT id, project_id, item, units, day_rate, days
		 FROM project_equipment WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var e models.EquipmentAllocation
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Item, &e.Units, &e.DayRate, &e.Days); err != nil {
			rows.Close()
			return nil, err
		}
		src.Equipment = append(src.Equipment, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return src, nil
}

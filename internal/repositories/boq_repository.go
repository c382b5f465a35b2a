package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ops-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BOQRepository struct {
	DB *pgxpool.Pool
}

func NewBOQRepository(db *pgxpool.Pool) *BOQRepository {
	return &BOQRepository{DB: db}
}

const boqColumns = `id, boq_number, project_id, project_name, client_name, client_contact,
	location, sections, discount, subtotal, vat, total, internal_cost, profit_amount,
	profit_margin, status, payment_terms, validity_days, remarks, created_at, updated_at`

func scanBOQ(row pgx.Row) (*models.BOQ, error) {
	var boq models.BOQ
	var blob []byte
	err := row.Scan(&boq.ID, &boq.BOQNumber, &boq.ProjectID, &boq.ProjectName,
		&boq.ClientName, &boq.ClientContact, &boq.Location, &blob, &boq.Discount,
		&boq.Subtotal, &boq.VAT, &boq.Total, &boq.InternalCost, &boq.ProfitAmount,
		&boq.ProfitMargin, &boq.Status, &boq.PaymentTerms, &boq.ValidityDays,
		&boq.Remarks, &boq.CreatedAt, &boq.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	boq.Sections, err = models.ParseSections(blob)
	if err != nil {
		return nil, fmt.Errorf("boq %d: malformed sections blob: %w", boq.ID, err)
	}
	return &boq, nil
}

// Get retrieves a BOQ by id, normalizing the sections blob.
func (r *BOQRepository) Get(ctx context.Context, id int) (*models.BOQ, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+boqColumns+` FROM boqs WHERE id = $1`, id)
	return scanBOQ(row)
}

// List returns all BOQs, newest first.
func (r *BOQRepository) List(ctx context.Context) ([]*models.BOQ, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+boqColumns+` FROM boqs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boqs []*models.BOQ
	for rows.Next() {
		boq, err := scanBOQ(rows)
		if err != nil {
			return nil, err
		}
		boqs = append(boqs, boq)
	}
	return boqs, rows.Err()
}

// UpdateSnapshot writes the sections blob and every derived scalar in one
// transaction. Either the whole snapshot replaces the old one or nothing
// changes; readers never see a partially updated document.
func (r *BOQRepository) UpdateSnapshot(ctx context.Context, boq *models.BOQ) error {
	blob, err := json.Marshal(boq.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`UPDATE boqs
		 SET project_name = $2, client_name = $3, client_contact = $4, location = $5,
		     sections = $6, discount = $7, subtotal = $8, vat = $9, total = $10,
		     internal_cost = $11, profit_amount = $12, profit_margin = $13,
		     status = $14, payment_terms = $15, validity_days = $16, remarks = $17,
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING created_at, updated_at`,
		boq.ID, boq.ProjectName, boq.ClientName, boq.ClientContact, boq.Location,
		blob, boq.Discount, boq.Subtotal, boq.VAT, boq.Total, boq.InternalCost,
		boq.ProfitAmount, boq.ProfitMargin, boq.Status, boq.PaymentTerms,
		boq.ValidityDays, boq.Remarks,
	).Scan(&boq.CreatedAt, &boq.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return tx.Commit(ctx)
}

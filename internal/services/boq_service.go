package services

import (
	"context"
	"encoding/json"

	"ops-backend/internal/cache"
	"ops-backend/internal/calc"
	"ops-backend/internal/metrics"
	"ops-backend/internal/models"
)

// BOQStore is what the BOQ service needs from persistence.
type BOQStore interface {
	Get(ctx context.Context, id int) (*models.BOQ, error)
	List(ctx context.Context) ([]*models.BOQ, error)
	UpdateSnapshot(ctx context.Context, boq *models.BOQ) error
}

type BOQService struct {
	Repo BOQStore
}

func NewBOQService(repo BOQStore) *BOQService {
	return &BOQService{Repo: repo}
}

// GetBOQ serves a BOQ, cache first. The display rating is derived after load;
// it is never part of the stored or cached snapshot.
func (s *BOQService) GetBOQ(ctx context.Context, id int) (*models.BOQ, error) {
	if data, ok := cache.GetSnapshot(ctx, cache.BOQKey(id)); ok {
		var boq models.BOQ
		if err := json.Unmarshal(data, &boq); err == nil {
			decorateBOQ(&boq)
			return &boq, nil
		}
	}

	boq, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	cacheBOQ(ctx, boq)
	decorateBOQ(boq)
	return boq, nil
}

// ListBOQs returns all BOQs with display ratings attached.
func (s *BOQService) ListBOQs(ctx context.Context) ([]*models.BOQ, error) {
	boqs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, boq := range boqs {
		decorateBOQ(boq)
	}
	return boqs, nil
}

// UpdateBOQ applies an edit. Whatever amounts the client computed locally are
// discarded: every derived value is recomputed here from the submitted
// quantities, rates, costs and discount, then the whole snapshot is persisted
// atomically and the cache entry replaced wholesale.
func (s *BOQService) UpdateBOQ(ctx context.Context, id int, req *models.UpdateBOQRequest) (*models.BOQ, error) {
	boq, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	boq.ProjectName = req.ProjectName
	boq.ClientName = req.ClientName
	boq.ClientContact = req.ClientContact
	boq.Location = req.Location
	boq.PaymentTerms = req.PaymentTerms
	boq.Remarks = req.Remarks
	if req.Status != "" {
		boq.Status = req.Status
	}
	if req.ValidityDays > 0 {
		boq.ValidityDays = req.ValidityDays
	}

	applyBOQTotals(boq, req.Sections, req.Discount.Float64())

	if err := s.Repo.UpdateSnapshot(ctx, boq); err != nil {
		return nil, err
	}

	cacheBOQ(ctx, boq)
	decorateBOQ(boq)
	return boq, nil
}

// RecalculateBOQ re-derives every value of a stored BOQ from its own sections
// blob and replaces the persisted snapshot. Useful when the blob has been
// edited out of band and the scalar summary columns no longer match it.
func (s *BOQService) RecalculateBOQ(ctx context.Context, id int) (*models.BOQ, error) {
	boq, err := s.Repo.Get(ctx, id)
	if err != nil {
		metrics.RecalculationsTotal.WithLabelValues("boq", "error").Inc()
		return nil, err
	}

	applyBOQTotals(boq, boq.Sections, boq.Discount)

	if err := s.Repo.UpdateSnapshot(ctx, boq); err != nil {
		metrics.RecalculationsTotal.WithLabelValues("boq", "error").Inc()
		return nil, err
	}

	metrics.RecalculationsTotal.WithLabelValues("boq", "ok").Inc()
	cacheBOQ(ctx, boq)
	decorateBOQ(boq)
	return boq, nil
}

func applyBOQTotals(boq *models.BOQ, sections []models.Section, discount float64) {
	fresh, totals := calc.ComputeTotals(sections, discount)
	boq.Sections = fresh
	boq.Discount = totals.Discount
	boq.Subtotal = totals.Subtotal
	boq.VAT = totals.VAT
	boq.Total = totals.Total
	boq.InternalCost = totals.InternalCost
	boq.ProfitAmount = totals.ProfitAmount
	boq.ProfitMargin = totals.ProfitMargin
}

func cacheBOQ(ctx context.Context, boq *models.BOQ) {
	if data, err := json.Marshal(boq); err == nil {
		cache.ReplaceSnapshot(ctx, cache.BOQKey(boq.ID), data)
	}
}

func decorateBOQ(boq *models.BOQ) {
	boq.MarginRating = calc.MarginRating(boq.ProfitMargin)
}

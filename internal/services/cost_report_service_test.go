package services

import (
	"context"
	"errors"
	"testing"

	"ops-backend/internal/models"
	"ops-backend/internal/repositories"
)

type fakeReportStore struct {
	reports   map[int]*models.CostReport
	saveErr   error
	saveCount int
}

func (f *fakeReportStore) Get(ctx context.Context, id int) (*models.CostReport, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *report
	copied.Categories = append([]models.CostCategory(nil), report.Categories...)
	return &copied, nil
}

func (f *fakeReportStore) List(ctx context.Context) ([]*models.CostReport, error) {
	var out []*models.CostReport
	for _, report := range f.reports {
		out = append(out, report)
	}
	return out, nil
}

func (f *fakeReportStore) UpdateSnapshot(ctx context.Context, report *models.CostReport) error {
	f.saveCount++
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *report
	f.reports[report.ID] = &copied
	return nil
}

type fakeProjectStore struct {
	sources map[int]*models.ProjectSource
}

func (f *fakeProjectStore) Source(ctx context.Context, projectID int) (*models.ProjectSource, error) {
	src, ok := f.sources[projectID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return src, nil
}

func testProjectSource() *models.ProjectSource {
	return &models.ProjectSource{
		Project: &models.Project{
			ID:               7,
			Name:             "Conference build",
			ContractValue:    15000,
			OverheadEstimate: 800,
			OtherEstimate:    200,
		},
		Crew: []models.CrewAssignment{
			{Role: "rigger", Headcount: 4, DayRate: 250, Days: 3},
			{Role: "electrician", Headcount: 1, DayRate: 400, Days: 2},
		},
		Transport: []models.TransportAssignment{
			{Vehicle: "5t truck", Trips: 4, RatePerTrip: 300},
		},
		Materials: []models.MaterialAllocation{
			{Description: "plywood", Quantity: 50, UnitCost: 30},
		},
		Equipment: []models.EquipmentAllocation{
			{Item: "genie lift", Units: 2, DayRate: 180, Days: 3},
		},
	}
}

func testCategories() []models.CostCategory {
	return []models.CostCategory{
		{Name: models.CategoryLabor, Estimated: 3000, Actual: 3100},
		{Name: models.CategoryTransport, Estimated: 1000, Actual: 900},
		{Name: models.CategoryMaterial, Estimated: 1500, Actual: 1500},
		{Name: models.CategoryEquipment, Estimated: 1000, Actual: 1200},
		{Name: models.CategoryOverhead, Estimated: 800, Actual: 800},
		{Name: models.CategoryOther, Estimated: 200, Actual: 0},
	}
}

func TestDeriveEstimates(t *testing.T) {
	estimates := DeriveEstimates(testProjectSource())

	want := map[string]float64{
		models.CategoryLabor:     3800, // 4*250*3 + 1*400*2
		models.CategoryTransport: 1200, // 4*300
		models.CategoryMaterial:  1500, // 50*30
		models.CategoryEquipment: 1080, // 2*180*3
		models.CategoryOverhead:  800,
		models.CategoryOther:     200,
	}
	for name, wantVal := range want {
		if got := estimates[name]; got != wantVal {
			t.Errorf("%s estimate = %v, want %v", name, got, wantVal)
		}
	}
}

func TestRecalculatePreservesActuals(t *testing.T) {
	store := &fakeReportStore{reports: map[int]*models.CostReport{
		1: {ID: 1, ProjectID: 7, Revenue: 14000, Categories: testCategories()},
	}}
	projects := &fakeProjectStore{sources: map[int]*models.ProjectSource{7: testProjectSource()}}
	svc := NewCostReportService(store, projects)

	report, err := svc.Recalculate(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	if len(report.Categories) != len(models.CategoryNames) {
		t.Fatalf("got %d categories, want %d", len(report.Categories), len(models.CategoryNames))
	}
	for i, name := range models.CategoryNames {
		if report.Categories[i].Name != name {
			t.Errorf("category %d = %q, want %q", i, report.Categories[i].Name, name)
		}
	}

	// Estimates re-derived from project data.
	if got := report.Categories[0].Estimated.Float64(); got != 3800 {
		t.Errorf("labor estimate = %v, want 3800", got)
	}
	// User-entered actuals carried forward untouched.
	if got := report.Categories[0].Actual.Float64(); got != 3100 {
		t.Errorf("labor actual = %v, want preserved 3100", got)
	}
	// Revenue refreshed from the project contract value.
	if report.Revenue != 15000 {
		t.Errorf("revenue = %v, want 15000", report.Revenue)
	}
}

func TestRecalculateResetActuals(t *testing.T) {
	store := &fakeReportStore{reports: map[int]*models.CostReport{
		1: {ID: 1, ProjectID: 7, Categories: testCategories()},
	}}
	projects := &fakeProjectStore{sources: map[int]*models.ProjectSource{7: testProjectSource()}}
	svc := NewCostReportService(store, projects)

	report, err := svc.Recalculate(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("Recalculate: %v", err)
	}

	for _, c := range report.Categories {
		if c.Actual != c.Estimated {
			t.Errorf("%s actual = %v, want refreshed to estimate %v", c.Name, c.Actual, c.Estimated)
		}
		if c.Variance != 0 {
			t.Errorf("%s variance = %v, want 0 after reset", c.Name, c.Variance)
		}
	}
}

func TestRecalculateMissingReport(t *testing.T) {
	store := &fakeReportStore{reports: map[int]*models.CostReport{}}
	projects := &fakeProjectStore{sources: map[int]*models.ProjectSource{}}
	svc := NewCostReportService(store, projects)

	_, err := svc.Recalculate(context.Background(), 99, false)
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if store.saveCount != 0 {
		t.Errorf("saveCount = %d, want 0", store.saveCount)
	}
}

func TestRecalculatePersistFailureLeavesSnapshot(t *testing.T) {
	store := &fakeReportStore{
		reports: map[int]*models.CostReport{
			1: {ID: 1, ProjectID: 7, ActualCost: 7500, Categories: testCategories()},
		},
		saveErr: errors.New("connection reset"),
	}
	projects := &fakeProjectStore{sources: map[int]*models.ProjectSource{7: testProjectSource()}}
	svc := NewCostReportService(store, projects)

	_, err := svc.Recalculate(context.Background(), 1, false)
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if store.reports[1].ActualCost != 7500 {
		t.Errorf("stored actual cost = %v, want untouched 7500", store.reports[1].ActualCost)
	}
}

func TestUpdateReportMergesActualsOnly(t *testing.T) {
	store := &fakeReportStore{reports: map[int]*models.CostReport{
		1: {ID: 1, ProjectID: 7, Revenue: 15000, Categories: testCategories()},
	}}
	svc := NewCostReportService(store, &fakeProjectStore{})

	report, err := svc.UpdateReport(context.Background(), 1, &models.UpdateCostReportRequest{
		Actuals: map[string]models.FlexFloat{
			models.CategoryLabor: 3500,
			"bogus":              999,
		},
		Status: models.ReportStatusInProgress,
	})
	if err != nil {
		t.Fatalf("UpdateReport: %v", err)
	}

	if got := report.Categories[0].Actual.Float64(); got != 3500 {
		t.Errorf("labor actual = %v, want 3500", got)
	}
	// Estimates never change through a manual edit.
	if got := report.Categories[0].Estimated.Float64(); got != 3000 {
		t.Errorf("labor estimate = %v, want 3000", got)
	}
	if report.Status != models.ReportStatusInProgress {
		t.Errorf("status = %q, want in_progress", report.Status)
	}
	// Unknown category names are ignored, not appended.
	if len(report.Categories) != len(models.CategoryNames) {
		t.Errorf("got %d categories, want %d", len(report.Categories), len(models.CategoryNames))
	}

	stored := store.reports[1]
	if stored.BudgetStatus != "" || stored.MarginRating != "" {
		t.Errorf("derived labels persisted: budget=%q margin=%q", stored.BudgetStatus, stored.MarginRating)
	}
	if report.BudgetStatus == "" || report.MarginRating == "" {
		t.Error("derived labels missing from response")
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/planboard/internal/calculator"
	"github.com/mmynk/planboard/internal/models"
	"github.com/mmynk/planboard/internal/storage"
)

// ErrValidation wraps boundary validation failures so the transport layer can
// map them to a client error.
var ErrValidation = errors.New("invalid input")

// Plan is the editable state of the dashboard: divisions plus allocation
// settings.
type Plan struct {
	Divisions []models.Division         `json:"divisions"`
	Settings  models.AllocationSettings `json:"settings"`
}

// Recomputation is the full derived output for the current plan.
type Recomputation struct {
	Results  []models.BreakEvenResult `json:"results"`
	Warnings []calculator.Warning     `json:"warnings,omitempty"`
	Chart    []calculator.ChartSeries `json:"chart"`
}

// DivisionSummary is one row of the allocation summary table.
type DivisionSummary struct {
	Division                string  `json:"division"`
	ContributionMarginRatio float64 `json:"contribution_margin_ratio"`
	TotalFixed              float64 `json:"total_fixed"`
	TotalVariable           float64 `json:"total_variable"`
	BreakEvenRevenue        float64 `json:"break_even_revenue"`

	// Note carries the exclusion reason when the figures are undefined.
	Note string `json:"note,omitempty"`
}

// PlanService manages the plan data and drives recomputation.
type PlanService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewPlanService creates a new plan service with the given storage backend.
func NewPlanService(store storage.Store, logger *slog.Logger) *PlanService {
	return &PlanService{store: store, logger: logger}
}

// GetPlan returns the current divisions and allocation settings.
func (s *PlanService) GetPlan(ctx context.Context) (*Plan, error) {
	divisions, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return &Plan{Divisions: divisions, Settings: *settings}, nil
}

// UpdateAllocation validates and saves new allocation settings.
func (s *PlanService) UpdateAllocation(ctx context.Context, settings models.AllocationSettings) error {
	divisions, err := s.store.ListDivisions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load divisions: %w", err)
	}
	if err := settings.Validate(divisions); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.store.SaveAllocationSettings(ctx, &settings); err != nil {
		return fmt.Errorf("failed to save allocation settings: %w", err)
	}

	s.logger.Info("Allocation updated",
		"total_hq_cost", settings.TotalHQCost,
		"fixed_ratio", settings.FixedRatio,
		"variable_ratio", settings.VariableRatio,
	)
	return nil
}

// ResetAllocation restores equal shares across all divisions and clears
// inter-division transfers. Cost pool totals and ratios are kept.
func (s *PlanService) ResetAllocation(ctx context.Context) (*models.AllocationSettings, error) {
	divisions, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	settings.Shares = models.EqualShares(divisions)
	settings.Transfers = nil

	if err := s.store.SaveAllocationSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save allocation settings: %w", err)
	}

	s.logger.Info("Allocation reset to equal shares", "divisions", len(divisions))
	return settings, nil
}

// UpdateDivisions replaces the division list. Shares no longer match the new
// list, so they are reset to equal and transfers for removed divisions are
// dropped.
func (s *PlanService) UpdateDivisions(ctx context.Context, divisions []models.Division) error {
	if err := models.ValidateDivisions(divisions); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.store.ReplaceDivisions(ctx, divisions); err != nil {
		return fmt.Errorf("failed to replace divisions: %w", err)
	}

	settings, err := s.store.GetAllocationSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load allocation settings: %w", err)
	}
	if settings == nil {
		settings = &models.AllocationSettings{}
	}

	settings.Shares = models.EqualShares(divisions)
	names := make(map[string]bool, len(divisions))
	for _, d := range divisions {
		names[d.Name] = true
	}
	for division := range settings.Transfers {
		if !names[division] {
			delete(settings.Transfers, division)
		}
	}

	if err := s.store.SaveAllocationSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to save allocation settings: %w", err)
	}

	s.logger.Info("Divisions replaced", "count", len(divisions))
	return nil
}

// Recompute derives break-even results and chart series for the current
// plan. Divisions with undefined results come back as warnings and are kept
// out of the chart.
func (s *PlanService) Recompute(ctx context.Context) (*Recomputation, error) {
	divisions, settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	results, warnings := calculator.ComputeAll(divisions, *settings)
	for _, w := range warnings {
		s.logger.Warn("Division excluded from chart", "division", w.Division, "reason", w.Message)
	}

	return &Recomputation{
		Results:  results,
		Warnings: warnings,
		Chart:    calculator.BuildChartSeries(results),
	}, nil
}

// Summary returns one row per division with post-allocation totals, margin
// and break-even revenue. Divisions with undefined figures appear with a
// note instead of numbers.
func (s *PlanService) Summary(ctx context.Context) ([]DivisionSummary, error) {
	recomputation, err := s.Recompute(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]DivisionSummary, 0, len(recomputation.Results)+len(recomputation.Warnings))
	for _, r := range recomputation.Results {
		rows = append(rows, DivisionSummary{
			Division:                r.Division,
			ContributionMarginRatio: r.ContributionMarginRatio,
			TotalFixed:              r.TotalFixed,
			TotalVariable:           r.TotalVariable,
			BreakEvenRevenue:        r.BreakEvenRevenue,
		})
	}
	for _, w := range recomputation.Warnings {
		rows = append(rows, DivisionSummary{Division: w.Division, Note: w.Message})
	}
	return rows, nil
}

// load fetches the plan inputs, falling back to empty equal-share settings if
// none were ever saved.
func (s *PlanService) load(ctx context.Context) ([]models.Division, *models.AllocationSettings, error) {
	divisions, err := s.store.ListDivisions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load divisions: %w", err)
	}

	settings, err := s.store.GetAllocationSettings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load allocation settings: %w", err)
	}
	if settings == nil {
		settings = &models.AllocationSettings{Shares: models.EqualShares(divisions)}
	}
	return divisions, settings, nil
}

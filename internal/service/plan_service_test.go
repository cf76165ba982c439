package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/planboard/internal/models"
	"github.com/mmynk/planboard/internal/storage/sqlite"
)

func newPlanService(t *testing.T) *PlanService {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "planboard-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewPlanService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestUpdateAllocationValidation(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	plan, err := svc.GetPlan(ctx)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}

	t.Run("ratios must partition the total", func(t *testing.T) {
		settings := plan.Settings
		settings.FixedRatio = 0.9
		settings.VariableRatio = 0.9

		err := svc.UpdateAllocation(ctx, settings)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("shares must sum to one", func(t *testing.T) {
		settings := plan.Settings
		settings.Shares = map[string]models.DivisionShare{}
		for name := range plan.Settings.Shares {
			settings.Shares[name] = models.DivisionShare{Fixed: 0.5, Variable: 0.5}
		}

		err := svc.UpdateAllocation(ctx, settings)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("valid settings are persisted", func(t *testing.T) {
		if err := svc.UpdateAllocation(ctx, plan.Settings); err != nil {
			t.Fatalf("UpdateAllocation failed: %v", err)
		}
	})
}

func TestUpdateDivisionsResetsShares(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	divisions := []models.Division{
		{Name: "North", Revenue: 1000, FixedCost: 100, VariableCost: 200},
		{Name: "South", Revenue: 2000, FixedCost: 300, VariableCost: 400},
	}
	if err := svc.UpdateDivisions(ctx, divisions); err != nil {
		t.Fatalf("UpdateDivisions failed: %v", err)
	}

	plan, err := svc.GetPlan(ctx)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if len(plan.Divisions) != 2 {
		t.Fatalf("expected 2 divisions, got %d", len(plan.Divisions))
	}
	for _, name := range []string{"North", "South"} {
		share, ok := plan.Settings.Shares[name]
		if !ok {
			t.Fatalf("missing share for %s", name)
		}
		if share.Fixed != 0.5 || share.Variable != 0.5 {
			t.Errorf("%s: expected equal shares, got %+v", name, share)
		}
	}

	t.Run("invalid division list rejected", func(t *testing.T) {
		err := svc.UpdateDivisions(ctx, []models.Division{{Name: ""}})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestResetAllocationClearsTransfers(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	plan, err := svc.GetPlan(ctx)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}

	settings := plan.Settings
	settings.Shares = map[string]models.DivisionShare{}
	n := len(plan.Divisions)
	for i, d := range plan.Divisions {
		// Skew the first division, rebalance over the rest.
		share := 0.4
		if i > 0 {
			share = (1.0 - 0.4) / float64(n-1)
		}
		settings.Shares[d.Name] = models.DivisionShare{Fixed: share, Variable: share}
	}
	settings.Transfers = map[string]models.CostTransfer{
		plan.Divisions[0].Name: {Fixed: 1000},
	}
	if err := svc.UpdateAllocation(ctx, settings); err != nil {
		t.Fatalf("UpdateAllocation failed: %v", err)
	}

	reset, err := svc.ResetAllocation(ctx)
	if err != nil {
		t.Fatalf("ResetAllocation failed: %v", err)
	}

	equal := 1.0 / float64(n)
	for name, share := range reset.Shares {
		if share.Fixed != equal || share.Variable != equal {
			t.Errorf("%s: expected share %g, got %+v", name, equal, share)
		}
	}
	if len(reset.Transfers) != 0 {
		t.Errorf("expected transfers cleared, got %+v", reset.Transfers)
	}

	// Pool totals survive the reset.
	if reset.TotalHQCost != plan.Settings.TotalHQCost {
		t.Errorf("expected total HQ cost unchanged, got %g", reset.TotalHQCost)
	}
}

func TestSummaryMatchesRecompute(t *testing.T) {
	svc := newPlanService(t)
	ctx := context.Background()

	recomputation, err := svc.Recompute(ctx)
	if err != nil {
		t.Fatalf("Recompute failed: %v", err)
	}
	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if len(summary) != len(recomputation.Results)+len(recomputation.Warnings) {
		t.Fatalf("expected %d summary rows, got %d",
			len(recomputation.Results)+len(recomputation.Warnings), len(summary))
	}

	rows := make(map[string]DivisionSummary)
	for _, row := range summary {
		rows[row.Division] = row
	}
	for _, r := range recomputation.Results {
		row, ok := rows[r.Division]
		if !ok {
			t.Fatalf("missing summary row for %s", r.Division)
		}
		if row.BreakEvenRevenue != r.BreakEvenRevenue {
			t.Errorf("%s: summary break-even %g != recompute %g",
				r.Division, row.BreakEvenRevenue, r.BreakEvenRevenue)
		}
	}
}

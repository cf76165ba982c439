package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/planboard/internal/models"
)

// ListDivisions returns the planning divisions in display order.
func (s *SQLiteStore) ListDivisions(ctx context.Context) ([]models.Division, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, revenue, fixed_cost, variable_cost FROM divisions ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}
	defer rows.Close()

	var divisions []models.Division
	for rows.Next() {
		var d models.Division
		if err := rows.Scan(&d.Name, &d.Revenue, &d.FixedCost, &d.VariableCost); err != nil {
			return nil, fmt.Errorf("failed to scan division: %w", err)
		}
		divisions = append(divisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate divisions: %w", err)
	}
	return divisions, nil
}

// ReplaceDivisions replaces the full division list, preserving the submitted
// order as the display order.
func (s *SQLiteStore) ReplaceDivisions(ctx context.Context, divisions []models.Division) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM divisions"); err != nil {
		return fmt.Errorf("failed to clear divisions: %w", err)
	}

	for i, d := range divisions {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO divisions (name, revenue, fixed_cost, variable_cost, position) VALUES (?, ?, ?, ?, ?)",
			d.Name, d.Revenue, d.FixedCost, d.VariableCost, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert division %s: %w", d.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetAllocationSettings returns the current allocation settings, or nil if
// none have been saved yet.
func (s *SQLiteStore) GetAllocationSettings(ctx context.Context) (*models.AllocationSettings, error) {
	settings := &models.AllocationSettings{
		Shares:    make(map[string]models.DivisionShare),
		Transfers: make(map[string]models.CostTransfer),
	}

	err := s.db.QueryRowContext(ctx,
		"SELECT total_hq_cost, fixed_ratio, variable_ratio FROM allocation_settings WHERE id = 1",
	).Scan(&settings.TotalHQCost, &settings.FixedRatio, &settings.VariableRatio)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation settings: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT division, fixed_share, variable_share FROM allocation_shares",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var division string
		var share models.DivisionShare
		if err := rows.Scan(&division, &share.Fixed, &share.Variable); err != nil {
			return nil, fmt.Errorf("failed to scan allocation share: %w", err)
		}
		settings.Shares[division] = share
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate allocation shares: %w", err)
	}

	transferRows, err := s.db.QueryContext(ctx,
		"SELECT division, fixed, variable FROM cost_transfers",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost transfers: %w", err)
	}
	defer transferRows.Close()

	for transferRows.Next() {
		var division string
		var transfer models.CostTransfer
		if err := transferRows.Scan(&division, &transfer.Fixed, &transfer.Variable); err != nil {
			return nil, fmt.Errorf("failed to scan cost transfer: %w", err)
		}
		settings.Transfers[division] = transfer
	}
	if err := transferRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cost transfers: %w", err)
	}

	return settings, nil
}

// SaveAllocationSettings replaces the allocation settings, shares and
// transfers in one transaction.
func (s *SQLiteStore) SaveAllocationSettings(ctx context.Context, settings *models.AllocationSettings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO allocation_settings (id, total_hq_cost, fixed_ratio, variable_ratio)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			total_hq_cost = excluded.total_hq_cost,
			fixed_ratio = excluded.fixed_ratio,
			variable_ratio = excluded.variable_ratio`,
		settings.TotalHQCost, settings.FixedRatio, settings.VariableRatio,
	)
	if err != nil {
		return fmt.Errorf("failed to save allocation settings: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM allocation_shares"); err != nil {
		return fmt.Errorf("failed to clear allocation shares: %w", err)
	}
	for division, share := range settings.Shares {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO allocation_shares (division, fixed_share, variable_share) VALUES (?, ?, ?)",
			division, share.Fixed, share.Variable,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share for %s: %w", division, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cost_transfers"); err != nil {
		return fmt.Errorf("failed to clear cost transfers: %w", err)
	}
	for division, transfer := range settings.Transfers {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO cost_transfers (division, fixed, variable) VALUES (?, ?, ?)",
			division, transfer.Fixed, transfer.Variable,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transfer for %s: %w", division, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

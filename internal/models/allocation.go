package models

import "fmt"

// ShareTolerance is how far the per-division shares may drift from summing to
// exactly 1.0 before the settings are rejected. Matches the slack the
// dashboard sliders produce at a 0.01 step.
const ShareTolerance = 0.001

// DivisionShare is one division's slice of the headquarters cost pools.
// Fixed and Variable are weights in [0,1]; across all divisions each column
// sums to 1.
type DivisionShare struct {
	Fixed    float64 `json:"fixed"`
	Variable float64 `json:"variable"`
}

// CostTransfer shifts cost between divisions on top of the headquarters
// allocation, e.g. when one division agrees to carry part of another's burden.
// Amounts may be negative (cost given away).
type CostTransfer struct {
	Fixed    float64 `json:"fixed"`
	Variable float64 `json:"variable"`
}

// AllocationSettings describes how the headquarters overhead pool is split
// into fixed and variable portions and distributed across divisions.
//
// TotalHQCost * FixedRatio is the fixed pool, TotalHQCost * VariableRatio the
// variable pool; the two ratios partition the total. Each division then
// receives pool * share.
type AllocationSettings struct {
	TotalHQCost   float64                  `json:"total_hq_cost"`
	FixedRatio    float64                  `json:"fixed_ratio"`
	VariableRatio float64                  `json:"variable_ratio"`
	Shares        map[string]DivisionShare `json:"shares"`
	Transfers     map[string]CostTransfer  `json:"transfers,omitempty"`
}

// Validate checks the settings invariants before they reach the calculator:
// ratios in [0,1] partitioning the total, shares non-negative and summing to
// 1 per column, and a share entry for every listed division.
func (s *AllocationSettings) Validate(divisions []Division) error {
	if s.TotalHQCost < 0 {
		return fmt.Errorf("total HQ cost must not be negative")
	}
	if s.FixedRatio < 0 || s.FixedRatio > 1 {
		return fmt.Errorf("fixed ratio must be in [0,1], got %g", s.FixedRatio)
	}
	if s.VariableRatio < 0 || s.VariableRatio > 1 {
		return fmt.Errorf("variable ratio must be in [0,1], got %g", s.VariableRatio)
	}
	if d := s.FixedRatio + s.VariableRatio - 1; d > ShareTolerance || d < -ShareTolerance {
		return fmt.Errorf("fixed and variable ratios must sum to 1, got %g", s.FixedRatio+s.VariableRatio)
	}

	var fixedSum, variableSum float64
	for _, div := range divisions {
		share, ok := s.Shares[div.Name]
		if !ok {
			return fmt.Errorf("missing allocation share for division %s", div.Name)
		}
		if share.Fixed < 0 || share.Variable < 0 {
			return fmt.Errorf("division %s: shares must not be negative", div.Name)
		}
		fixedSum += share.Fixed
		variableSum += share.Variable
	}
	if d := fixedSum - 1; d > ShareTolerance || d < -ShareTolerance {
		return fmt.Errorf("fixed shares must sum to 1, got %g", fixedSum)
	}
	if d := variableSum - 1; d > ShareTolerance || d < -ShareTolerance {
		return fmt.Errorf("variable shares must sum to 1, got %g", variableSum)
	}
	return nil
}

// EqualShares distributes both cost pools evenly across the given divisions.
// Used for seeding and for the "reset allocation" action.
func EqualShares(divisions []Division) map[string]DivisionShare {
	shares := make(map[string]DivisionShare, len(divisions))
	if len(divisions) == 0 {
		return shares
	}
	equal := 1.0 / float64(len(divisions))
	for _, d := range divisions {
		shares[d.Name] = DivisionShare{Fixed: equal, Variable: equal}
	}
	return shares
}

// BreakEvenResult holds the derived figures for one division under the
// current allocation. Recomputed on every settings change; never persisted.
type BreakEvenResult struct {
	Division                string  `json:"division"`
	AllocatedFixed          float64 `json:"allocated_fixed"`
	AllocatedVariable       float64 `json:"allocated_variable"`
	TotalFixed              float64 `json:"total_fixed"`
	TotalVariable           float64 `json:"total_variable"`
	ContributionMarginRatio float64 `json:"contribution_margin_ratio"`
	BreakEvenRevenue        float64 `json:"break_even_revenue"`
}

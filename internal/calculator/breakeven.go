// Package calculator implements the pure break-even and cost-allocation
// arithmetic. All functions are deterministic and side-effect-free: identical
// inputs always yield identical outputs, so they can be re-invoked on every
// slider change.
package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/planboard/internal/models"
)

// marginEpsilon is the tolerance used when comparing the contribution margin
// ratio against zero. A margin at or below this is treated as non-positive:
// the division cannot break even no matter the revenue.
const marginEpsilon = 1e-9

// ErrDivideByZero marks results that are mathematically undefined for the
// given inputs: zero revenue, or a contribution margin at or below zero.
// Callers exclude the affected division from chart output and surface a
// warning instead of defaulting the value.
var ErrDivideByZero = errors.New("result undefined for inputs")

// Warning describes a division that had to be excluded from the results.
type Warning struct {
	Division string `json:"division"`
	Message  string `json:"message"`
}

// ComputeBreakEven derives one division's post-allocation cost structure,
// contribution margin ratio and break-even revenue.
//
// The headquarters pool is split by the fixed/variable ratios, each portion is
// distributed by the division's share, and inter-division transfers are
// applied on top:
//
//	allocated_fixed    = total_hq_cost * fixed_ratio * share.fixed
//	allocated_variable = total_hq_cost * variable_ratio * share.variable
//	total_fixed        = fixed_cost + allocated_fixed + transfer.fixed
//	total_variable     = variable_cost + allocated_variable + transfer.variable
//	margin_ratio       = 1 - total_variable/revenue
//	break_even_revenue = total_fixed / margin_ratio
func ComputeBreakEven(div models.Division, settings models.AllocationSettings) (models.BreakEvenResult, error) {
	share := settings.Shares[div.Name]
	transfer := settings.Transfers[div.Name]

	result := models.BreakEvenResult{
		Division:          div.Name,
		AllocatedFixed:    settings.TotalHQCost * settings.FixedRatio * share.Fixed,
		AllocatedVariable: settings.TotalHQCost * settings.VariableRatio * share.Variable,
	}
	result.TotalFixed = div.FixedCost + result.AllocatedFixed + transfer.Fixed
	result.TotalVariable = div.VariableCost + result.AllocatedVariable + transfer.Variable

	if div.Revenue == 0 {
		return result, fmt.Errorf("%s: revenue is zero, margin undefined: %w", div.Name, ErrDivideByZero)
	}

	result.ContributionMarginRatio = 1 - result.TotalVariable/div.Revenue
	if result.ContributionMarginRatio <= marginEpsilon {
		return result, fmt.Errorf("%s: contribution margin %.4f is not positive, cannot break even: %w",
			div.Name, result.ContributionMarginRatio, ErrDivideByZero)
	}

	result.BreakEvenRevenue = result.TotalFixed / result.ContributionMarginRatio
	return result, nil
}

// ComputeAll recomputes every division under the given settings. Divisions
// whose result is undefined are returned as warnings rather than results, so
// the caller can surface them and keep them out of the chart.
func ComputeAll(divisions []models.Division, settings models.AllocationSettings) ([]models.BreakEvenResult, []Warning) {
	results := make([]models.BreakEvenResult, 0, len(divisions))
	var warnings []Warning

	for _, div := range divisions {
		result, err := ComputeBreakEven(div, settings)
		if err != nil {
			warnings = append(warnings, Warning{Division: div.Name, Message: err.Error()})
			continue
		}
		results = append(results, result)
	}
	return results, warnings
}

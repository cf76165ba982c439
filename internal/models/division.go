package models

import "fmt"

// Division holds one business division's planning figures for the upcoming
// budgeting period. Values are supplied fresh for every recomputation; the
// calculator never mutates them.
type Division struct {
	// Name uniquely identifies the division within a plan.
	Name string `json:"name"`

	// Revenue is the planned gross revenue for the period.
	Revenue float64 `json:"revenue"`

	// FixedCost is the division's own fixed cost, before any headquarters
	// allocation.
	FixedCost float64 `json:"fixed_cost"`

	// VariableCost is the division's own variable cost, before any
	// headquarters allocation.
	VariableCost float64 `json:"variable_cost"`
}

// ValidateDivisions checks a full division list as submitted from the
// dashboard: non-empty unique names and non-negative figures.
func ValidateDivisions(divisions []Division) error {
	if len(divisions) == 0 {
		return fmt.Errorf("at least one division is required")
	}
	seen := make(map[string]bool, len(divisions))
	for _, d := range divisions {
		if d.Name == "" {
			return fmt.Errorf("division name must not be empty")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate division name: %s", d.Name)
		}
		seen[d.Name] = true
		if d.Revenue < 0 || d.FixedCost < 0 || d.VariableCost < 0 {
			return fmt.Errorf("division %s: figures must not be negative", d.Name)
		}
	}
	return nil
}

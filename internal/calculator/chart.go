package calculator

import "github.com/mmynk/planboard/internal/models"

// chartSamples is the number of points sampled along each profit line.
const chartSamples = 400

// ChartPoint is one sampled point on a division's profit line.
type ChartPoint struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// ChartSeries holds the data the dashboard needs to draw one division's
// break-even chart: the sampled profit line, the break-even marker and the
// fixed-cost level.
type ChartSeries struct {
	Division         string       `json:"division"`
	Points           []ChartPoint `json:"points"`
	BreakEvenRevenue float64      `json:"break_even_revenue"`
	FixedCost        float64      `json:"fixed_cost"`
}

// BuildChartSeries turns computed results into chart-ready series. The profit
// line is sampled over [0, 1.5 * break_even_revenue] so the break-even point
// sits two thirds of the way along the x axis, with
//
//	profit = revenue * margin_ratio - total_fixed
//
// Only valid results reach this function; divisions excluded during
// computation never appear in the chart.
func BuildChartSeries(results []models.BreakEvenResult) []ChartSeries {
	series := make([]ChartSeries, 0, len(results))

	for _, r := range results {
		xMax := r.BreakEvenRevenue * 1.5
		step := xMax / float64(chartSamples-1)

		points := make([]ChartPoint, chartSamples)
		for i := range points {
			revenue := step * float64(i)
			points[i] = ChartPoint{
				Revenue: revenue,
				Profit:  revenue*r.ContributionMarginRatio - r.TotalFixed,
			}
		}

		series = append(series, ChartSeries{
			Division:         r.Division,
			Points:           points,
			BreakEvenRevenue: r.BreakEvenRevenue,
			FixedCost:        r.TotalFixed,
		})
	}
	return series
}

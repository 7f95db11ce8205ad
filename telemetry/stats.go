package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowEndTick int `csv:"window_end"`
	Generation    int `csv:"generation"`

	// Population at window end
	Foragers     int `csv:"foragers"`
	BreederAlive int `csv:"breeder_alive"` // 0 or 1

	// Events during window
	Deaths      int `csv:"deaths"`
	NestsPlaced int `csv:"nests_placed"`
	FoodEaten   int `csv:"food_eaten"`
	EnergyGiven int `csv:"energy_given"`

	// Field state at window end
	ActivePheromoneCells int `csv:"pheromone_cells"`
	NestBlocks           int `csv:"nest_blocks"`
	BestNests            int `csv:"best_nests"`

	// Living-forager fitness distribution at window end
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
}

// FitnessDistribution fills the fitness summary fields from a sample of
// living-forager fitness values.
func (ws *WindowStats) FitnessDistribution(values []float64) {
	if len(values) == 0 {
		return
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	ws.FitnessMean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		ws.FitnessStd = stat.StdDev(sorted, nil)
	}
	ws.FitnessP10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	ws.FitnessP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	ws.FitnessP90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
}

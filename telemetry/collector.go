package telemetry

// Collector accumulates events within tick windows and produces
// WindowStats records.
type Collector struct {
	windowTicks     int
	windowStartTick int

	deaths      int
	nestsPlaced int
	foodEaten   int
	energyGiven int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordDeath records an agent death.
func (c *Collector) RecordDeath() {
	c.deaths++
}

// RecordNest records a nest placement.
func (c *Collector) RecordNest() {
	c.nestsPlaced++
}

// RecordFood records a mulch block eaten.
func (c *Collector) RecordFood() {
	c.foodEaten++
}

// RecordEnergyGiven records health transferred to the breeder.
func (c *Collector) RecordEnergyGiven(amount int) {
	c.energyGiven += amount
}

// ShouldFlush returns true when the current window is complete.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats with this window's event counters filled in
// and resets the window. Population and field fields are left for the
// caller.
func (c *Collector) Flush(currentTick int) WindowStats {
	ws := WindowStats{
		WindowEndTick: currentTick,
		Deaths:        c.deaths,
		NestsPlaced:   c.nestsPlaced,
		FoodEaten:     c.foodEaten,
		EnergyGiven:   c.energyGiven,
	}
	c.windowStartTick = currentTick
	c.deaths = 0
	c.nestsPlaced = 0
	c.foodEaten = 0
	c.energyGiven = 0
	return ws
}

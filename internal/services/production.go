package services

import (
	"math"

	"github.com/mhakimi/tribeland/internal/models"
)

// ProductionGrowthFactor is the per-level compounding applied to a building's
// base production rate above level 1.
const ProductionGrowthFactor = 1.10

// CalculateProductionRate applies the exponential production law:
// base * 1.10^(level-1), rounded to 2 decimal places. Level 1 yields the base
// rate; levels below 1 and non-positive bases contribute nothing.
func CalculateProductionRate(base float64, level int) float64 {
	if base <= 0 || level < 1 {
		return 0
	}
	return round2(base * math.Pow(ProductionGrowthFactor, float64(level-1)))
}

// CalculateResourceProduction derives the village's per-hour production rate
// for every resource type from its buildings. Buildings must be loaded with
// their types. Types without production data and inactive buildings are
// skipped; a type with no producers yields 0.
func CalculateResourceProduction(village *models.Village) map[string]float64 {
	rates := make(map[string]float64, len(models.ResourceTypes))
	for _, resourceType := range models.ResourceTypes {
		rates[resourceType] = 0
	}

	for i := range village.Buildings {
		building := &village.Buildings[i]
		if !building.IsActive {
			continue
		}
		for resourceType, base := range building.Type.ProductionRates() {
			rates[resourceType] = round2(rates[resourceType] + CalculateProductionRate(base, building.Level))
		}
	}

	return rates
}

// AccrueAmount advances a ledger amount by elapsedSeconds of production at
// ratePerHour, clamped at capacity. Returns the new amount and the applied
// delta. Negative elapsed time (clock skew) accrues nothing.
func AccrueAmount(amount, ratePerHour float64, elapsedSeconds, capacity float64) (float64, float64) {
	if elapsedSeconds < 0 {
		elapsedSeconds = 0
	}
	produced := ratePerHour / 3600 * elapsedSeconds
	newAmount := amount + produced
	if newAmount > capacity {
		newAmount = capacity
	}
	if newAmount < 0 {
		newAmount = 0
	}
	return newAmount, newAmount - amount
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

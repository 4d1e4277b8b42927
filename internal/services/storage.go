package services

import (
	"github.com/mhakimi/tribeland/internal/models"
)

// BaseStorageCapacity is the ceiling every ledger row starts with before any
// capacity building contributes.
const BaseStorageCapacity = 1000

// StorageCapacityPerLevel is what one warehouse or granary level adds.
const StorageCapacityPerLevel = 1000

// CalculateStorageCapacity derives the per-resource storage ceilings from the
// village's capacity buildings. A warehouse covers wood, clay and iron; a
// granary covers crop. Multiple instances sum their contributions.
func CalculateStorageCapacity(village *models.Village) map[string]float64 {
	capacities := make(map[string]float64, len(models.ResourceTypes))
	for _, resourceType := range models.ResourceTypes {
		capacities[resourceType] = BaseStorageCapacity
	}

	for i := range village.Buildings {
		building := &village.Buildings[i]
		if !building.IsActive || building.Level < 1 {
			continue
		}
		bonus := float64(building.Level) * StorageCapacityPerLevel
		switch building.Type.Key {
		case models.BuildingKeyWarehouse:
			capacities[models.ResourceWood] += bonus
			capacities[models.ResourceClay] += bonus
			capacities[models.ResourceIron] += bonus
		case models.BuildingKeyGranary:
			capacities[models.ResourceCrop] += bonus
		}
	}

	return capacities
}

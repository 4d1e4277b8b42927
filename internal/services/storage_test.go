package services

import (
	"testing"

	"github.com/mhakimi/tribeland/internal/models"
)

func TestCalculateStorageCapacity_BaseOnly(t *testing.T) {
	capacities := CalculateStorageCapacity(&models.Village{})
	for _, resourceType := range models.ResourceTypes {
		if capacities[resourceType] != BaseStorageCapacity {
			t.Errorf("%s capacity = %v, want %v", resourceType, capacities[resourceType], float64(BaseStorageCapacity))
		}
	}
}

func TestCalculateStorageCapacity_Warehouse(t *testing.T) {
	village := &models.Village{
		Buildings: []models.Building{
			{Level: 5, IsActive: true, Type: models.BuildingType{Key: models.BuildingKeyWarehouse}},
		},
	}

	capacities := CalculateStorageCapacity(village)

	for _, resourceType := range []string{models.ResourceWood, models.ResourceClay, models.ResourceIron} {
		if capacities[resourceType] != 6000 {
			t.Errorf("%s capacity = %v, want 6000", resourceType, capacities[resourceType])
		}
	}
	if capacities[models.ResourceCrop] != BaseStorageCapacity {
		t.Errorf("crop capacity = %v, want %v (warehouse does not cover crop)", capacities[models.ResourceCrop], float64(BaseStorageCapacity))
	}
}

func TestCalculateStorageCapacity_Granary(t *testing.T) {
	village := &models.Village{
		Buildings: []models.Building{
			{Level: 3, IsActive: true, Type: models.BuildingType{Key: models.BuildingKeyGranary}},
		},
	}

	capacities := CalculateStorageCapacity(village)

	if capacities[models.ResourceCrop] != 4000 {
		t.Errorf("crop capacity = %v, want 4000", capacities[models.ResourceCrop])
	}
	if capacities[models.ResourceWood] != BaseStorageCapacity {
		t.Errorf("wood capacity = %v, want %v (granary only covers crop)", capacities[models.ResourceWood], float64(BaseStorageCapacity))
	}
}

func TestCalculateStorageCapacity_MultipleSum(t *testing.T) {
	village := &models.Village{
		Buildings: []models.Building{
			{Level: 2, IsActive: true, Type: models.BuildingType{Key: models.BuildingKeyWarehouse}},
			{Level: 3, IsActive: true, Type: models.BuildingType{Key: models.BuildingKeyWarehouse}},
		},
	}

	capacities := CalculateStorageCapacity(village)
	if capacities[models.ResourceWood] != 6000 {
		t.Errorf("wood capacity = %v, want 6000 (1000 + 2000 + 3000)", capacities[models.ResourceWood])
	}
}

func TestCalculateStorageCapacity_InactiveIgnored(t *testing.T) {
	village := &models.Village{
		Buildings: []models.Building{
			{Level: 10, IsActive: false, Type: models.BuildingType{Key: models.BuildingKeyWarehouse}},
		},
	}

	capacities := CalculateStorageCapacity(village)
	if capacities[models.ResourceWood] != BaseStorageCapacity {
		t.Errorf("wood capacity = %v, want %v (inactive warehouse ignored)", capacities[models.ResourceWood], float64(BaseStorageCapacity))
	}
}

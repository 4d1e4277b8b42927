package services

import (
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/internal/repositories"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

// ResourceService exposes the ledger operations: affordability checks,
// all-or-nothing spends, clamped credits, and the per-village accrual step
// the tick engine runs.
type ResourceService struct {
	repo *repositories.ResourceRepository
}

func NewResourceService(repo *repositories.ResourceRepository) *ResourceService {
	return &ResourceService{repo: repo}
}

func (s *ResourceService) WithTx(tx *gorm.DB) *ResourceService {
	return &ResourceService{repo: s.repo.WithTx(tx)}
}

// CanAfford is fail-closed: a missing ledger row for any requested type means
// the village cannot afford the costs.
func (s *ResourceService) CanAfford(villageID uint, costs map[string]float64) (bool, error) {
	resources, err := s.repo.GetVillageResources(villageID)
	if err != nil {
		return false, err
	}

	amounts := make(map[string]float64, len(resources))
	for _, resource := range resources {
		amounts[resource.Type] = resource.Amount
	}

	for resourceType, cost := range costs {
		amount, ok := amounts[resourceType]
		if !ok || amount < cost {
			return false, nil
		}
	}
	return true, nil
}

// SpendResources debits all costs atomically. Returns false with no partial
// mutation when any single type is unaffordable; callers treat false as
// "action rejected", not a system error.
func (s *ResourceService) SpendResources(villageID uint, costs map[string]float64) (bool, error) {
	err := s.repo.SpendResources(villageID, costs)
	if err == nil {
		return true, nil
	}
	if errors.HasCode(err, errors.ErrCodeInsufficientResources) {
		return false, nil
	}
	return false, err
}

// AddResources credits the ledger, clamped at each row's storage capacity.
func (s *ResourceService) AddResources(villageID uint, amounts map[string]float64) error {
	return s.repo.AddResources(villageID, amounts)
}

// UpdateVillageResources applies elapsed-time-proportional accrual to every
// ledger row of the village, refreshing the cached rate and capacity along
// the way, and advances last_updated to now. Returns the per-type deltas.
// The village must carry preloaded buildings and resources.
func (s *ResourceService) UpdateVillageResources(village *models.Village, now time.Time) (map[string]float64, error) {
	rates := CalculateResourceProduction(village)
	capacities := CalculateStorageCapacity(village)
	deltas := make(map[string]float64, len(village.Resources))

	for i := range village.Resources {
		resource := &village.Resources[i]
		rate := rates[resource.Type]
		capacity := capacities[resource.Type]

		elapsed := now.Sub(resource.LastUpdated).Seconds()
		newAmount, delta := AccrueAmount(resource.Amount, rate, elapsed, capacity)

		if err := s.repo.SaveAccrual(resource.ID, newAmount, rate, capacity, now); err != nil {
			return nil, err
		}

		resource.Amount = newAmount
		resource.ProductionRate = rate
		resource.StorageCapacity = capacity
		resource.LastUpdated = now
		deltas[resource.Type] = delta
	}

	return deltas, nil
}

// UpdateStorageCapacities persists the computed ceilings without accruing.
// Idempotent, safe to call every tick.
func (s *ResourceService) UpdateStorageCapacities(village *models.Village) error {
	capacities := CalculateStorageCapacity(village)
	for i := range village.Resources {
		resource := &village.Resources[i]
		capacity := capacities[resource.Type]
		if err := s.repo.UpdateCapacity(resource.ID, capacity); err != nil {
			return err
		}
		resource.StorageCapacity = capacity
	}
	return nil
}

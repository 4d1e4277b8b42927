package services

import (
	"math"
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/internal/repositories"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

// CostGrowthFactor is the per-level compounding applied to a building's base
// upgrade cost. Steeper than the production curve so higher levels stay
// expensive relative to their yield.
const CostGrowthFactor = 1.28

// DurationGrowthFactor scales build time per level.
const DurationGrowthFactor = 1.16

// ConstructionService is the action side of the building queue: it debits
// the ledger and creates the pending entry the tick engine later completes.
type ConstructionService struct {
	db        *gorm.DB
	resources *ResourceService
	buildings *repositories.BuildingRepository
	queues    *repositories.QueueRepository

	Now func() time.Time
}

func NewConstructionService(db *gorm.DB) *ConstructionService {
	return &ConstructionService{
		db:        db,
		resources: NewResourceService(repositories.NewResourceRepository(db)),
		buildings: repositories.NewBuildingRepository(db),
		queues:    repositories.NewQueueRepository(db),
		Now:       time.Now,
	}
}

// UpgradeCost scales the type's base costs for an upgrade from the given
// current level.
func UpgradeCost(baseCosts map[string]float64, currentLevel int) map[string]float64 {
	if currentLevel < 1 {
		currentLevel = 1
	}
	factor := math.Pow(CostGrowthFactor, float64(currentLevel-1))
	costs := make(map[string]float64, len(baseCosts))
	for resourceType, base := range baseCosts {
		costs[resourceType] = round2(base * factor)
	}
	return costs
}

// UpgradeDuration scales the type's base build time for an upgrade from the
// given current level.
func UpgradeDuration(baseSeconds, currentLevel int) time.Duration {
	if currentLevel < 1 {
		currentLevel = 1
	}
	seconds := float64(baseSeconds) * math.Pow(DurationGrowthFactor, float64(currentLevel-1))
	return time.Duration(math.Round(seconds)) * time.Second
}

// StartUpgrade spends the upgrade cost and enqueues the construction. The
// spend and the queue entry commit atomically. Rejections (unaffordable,
// already queued, max level) come back as coded AppErrors.
func (s *ConstructionService) StartUpgrade(villageID, buildingID uint) (*models.BuildingQueue, error) {
	now := s.Now().UTC()

	var queue *models.BuildingQueue
	err := s.db.Transaction(func(tx *gorm.DB) error {
		buildingRepo := s.buildings.WithTx(tx)
		queueRepo := s.queues.WithTx(tx)
		resourceSvc := s.resources.WithTx(tx)

		building, err := buildingRepo.GetByID(buildingID)
		if err != nil {
			return err
		}
		if building.VillageID != villageID {
			return errors.New(errors.ErrCodeNotFound, "building does not belong to this village")
		}
		if building.Level >= building.Type.MaxLevel {
			return errors.New(errors.ErrCodeValidationFailed, "building is already at max level")
		}

		pending, err := queueRepo.HasPendingBuildingQueue(buildingID)
		if err != nil {
			return err
		}
		if pending {
			return errors.New(errors.ErrCodeConflict, "an upgrade is already queued for this building")
		}

		costs := UpgradeCost(building.Type.BaseCosts(), building.Level)
		ok, err := resourceSvc.SpendResources(villageID, costs)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.ErrCodeInsufficientResources, "not enough resources for this upgrade")
		}

		queue = &models.BuildingQueue{
			VillageID:   villageID,
			BuildingID:  buildingID,
			TargetLevel: building.Level + 1,
			CompletedAt: now.Add(UpgradeDuration(building.Type.BuildSeconds, building.Level)),
		}
		return queueRepo.CreateBuildingQueue(queue)
	})
	if err != nil {
		return nil, err
	}
	return queue, nil
}

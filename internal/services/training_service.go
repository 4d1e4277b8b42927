package services

import (
	"time"

	"github.com/mhakimi/tribeland/internal/catalog"
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/internal/repositories"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

// TrainingService enqueues troop production against the unit catalog,
// spending through the ledger.
type TrainingService struct {
	db        *gorm.DB
	catalog   catalog.Catalog
	resources *ResourceService
	queues    *repositories.QueueRepository

	Now func() time.Time
}

func NewTrainingService(db *gorm.DB, cat catalog.Catalog) *TrainingService {
	return &TrainingService{
		db:        db,
		catalog:   cat,
		resources: NewResourceService(repositories.NewResourceRepository(db)),
		queues:    repositories.NewQueueRepository(db),
		Now:       time.Now,
	}
}

// TrainingCost multiplies the unit's cost map by count.
func TrainingCost(unit catalog.UnitDef, count int) map[string]float64 {
	costs := make(map[string]float64, len(unit.Cost))
	for resourceType, cost := range unit.Cost {
		costs[resourceType] = round2(cost * float64(count))
	}
	return costs
}

// StartTraining spends the batch cost and enqueues one training entry whose
// completion time scales with the batch size.
func (s *TrainingService) StartTraining(villageID uint, unitKey string, count int) (*models.TrainingQueue, error) {
	if count < 1 {
		return nil, errors.New(errors.ErrCodeValidationFailed, "training count must be at least 1")
	}

	unit, ok := s.catalog.Unit(unitKey)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown unit type")
	}

	now := s.Now().UTC()

	var queue *models.TrainingQueue
	err := s.db.Transaction(func(tx *gorm.DB) error {
		resourceSvc := s.resources.WithTx(tx)
		queueRepo := s.queues.WithTx(tx)

		costs := TrainingCost(unit, count)
		ok, err := resourceSvc.SpendResources(villageID, costs)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.ErrCodeInsufficientResources, "not enough resources to train this batch")
		}

		duration := time.Duration(unit.TrainSeconds*count) * time.Second
		queue = &models.TrainingQueue{
			VillageID:   villageID,
			UnitType:    unit.Key,
			Count:       count,
			CompletedAt: now.Add(duration),
		}
		return queueRepo.CreateTrainingQueue(queue)
	})
	if err != nil {
		return nil, err
	}
	return queue, nil
}

package services

import (
	"context"
	"time"

	"github.com/mhakimi/tribeland/internal/cache"
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/internal/repositories"
	"github.com/mhakimi/tribeland/pkg/errors"
	"github.com/mhakimi/tribeland/pkg/logger"
	"gorm.io/gorm"
)

// TickGuardKey is the cache key of the duplicate-tick guard marker. The
// marker holds the timestamp of the last committed tick and expires after
// the guard TTL.
const TickGuardKey = "game:last_tick"

// Deltas smaller than this are treated as zero and produce no audit row.
const productionLogEpsilon = 1e-6

// GameTickService advances the whole world by one simulation step. All
// phases of a tick run inside a single transaction; a failed phase rolls
// everything back and the guard marker stays unset, so the next scheduled
// invocation retries naturally.
type GameTickService struct {
	db        *gorm.DB
	villages  *repositories.VillageRepository
	resources *ResourceService
	buildings *repositories.BuildingRepository
	queues    *repositories.QueueRepository
	troops    *repositories.TroopRepository
	players   *repositories.PlayerRepository
	guard     *cache.Store
	guardTTL  time.Duration

	// Now is the clock source, overridable in tests.
	Now func() time.Time
}

// TickStatus is the read-only diagnostic for operational tooling.
type TickStatus struct {
	LastTick         *time.Time `json:"last_tick"`
	PendingBuildings int64      `json:"pending_buildings"`
	PendingTraining  int64      `json:"pending_training"`
	PendingMovements int64      `json:"pending_movements"`
	PendingEvents    int64      `json:"pending_events"`
}

func NewGameTickService(db *gorm.DB, guardTTL time.Duration) *GameTickService {
	return &GameTickService{
		db:        db,
		villages:  repositories.NewVillageRepository(db),
		resources: NewResourceService(repositories.NewResourceRepository(db)),
		buildings: repositories.NewBuildingRepository(db),
		queues:    repositories.NewQueueRepository(db),
		troops:    repositories.NewTroopRepository(db),
		players:   repositories.NewPlayerRepository(db),
		guard:     cache.NewStore(db),
		guardTTL:  guardTTL,
		Now:       time.Now,
	}
}

// ProcessGameTick runs one world tick. Invoked by the external scheduler; a
// second invocation inside the guard window is a silent no-op.
func (s *GameTickService) ProcessGameTick(ctx context.Context) error {
	now := s.Now().UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		guard := s.guard.WithTx(tx)

		if _, active, err := guard.Get(TickGuardKey, now); err != nil {
			return err
		} else if active {
			logger.Debug("Tick skipped, guard window still active")
			return nil
		}

		villages, err := s.processResourcePhase(tx, now)
		if err != nil {
			return err
		}
		completedBuildings, err := s.processBuildingQueues(tx, now)
		if err != nil {
			return err
		}
		completedTraining, err := s.processTrainingQueues(tx, now)
		if err != nil {
			return err
		}
		completedMovements, err := s.processMovements(tx, now)
		if err != nil {
			return err
		}
		completedEvents, err := s.processGameEvents(tx, now)
		if err != nil {
			return err
		}
		if err := s.updatePlayerStatistics(tx, villages, completedBuildings); err != nil {
			return err
		}

		if err := guard.Put(TickGuardKey, now.Format(time.RFC3339Nano), s.guardTTL, now); err != nil {
			return err
		}
		if err := guard.PurgeExpired(now); err != nil {
			return err
		}

		logger.Info("Game tick processed",
			"villages", len(villages),
			"buildings_completed", completedBuildings,
			"training_completed", completedTraining,
			"movements_completed", completedMovements,
			"events_completed", completedEvents,
		)
		return nil
	})
}

// processResourcePhase accrues production for every active village and logs
// the non-zero deltas. Returns the loaded villages for the statistics phase.
func (s *GameTickService) processResourcePhase(tx *gorm.DB, now time.Time) ([]models.Village, error) {
	villageRepo := s.villages.WithTx(tx)
	resourceSvc := s.resources.WithTx(tx)
	resourceRepo := repositories.NewResourceRepository(tx)

	villages, err := villageRepo.ListActiveVillages()
	if err != nil {
		return nil, err
	}

	for i := range villages {
		village := &villages[i]
		deltas, err := resourceSvc.UpdateVillageResources(village, now)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInternalError, "resource accrual failed")
		}

		for j := range village.Resources {
			resource := &village.Resources[j]
			delta := deltas[resource.Type]
			if delta <= productionLogEpsilon {
				continue
			}
			log := &models.ResourceProductionLog{
				VillageID:      village.ID,
				Type:           resource.Type,
				AmountProduced: round2(delta),
				FinalAmount:    round2(resource.Amount),
			}
			if err := resourceRepo.CreateProductionLog(log); err != nil {
				return nil, err
			}
		}
	}

	return villages, nil
}

// processBuildingQueues completes due construction entries. A building
// already at its type's max level keeps its level, but the queue entry still
// completes. A successful upgrade adds one population to the village.
func (s *GameTickService) processBuildingQueues(tx *gorm.DB, now time.Time) (int, error) {
	queueRepo := s.queues.WithTx(tx)
	buildingRepo := s.buildings.WithTx(tx)
	villageRepo := s.villages.WithTx(tx)

	due, err := queueRepo.DueBuildingQueues(now)
	if err != nil {
		return 0, err
	}

	for _, entry := range due {
		upgraded, err := buildingRepo.IncrementLevel(entry.BuildingID)
		if err != nil {
			return 0, err
		}
		if upgraded {
			if err := villageRepo.IncrementPopulation(entry.VillageID, 1); err != nil {
				return 0, err
			}
		} else {
			logger.Debug("Building already at max level, completing queue entry only",
				"building_id", entry.BuildingID, "queue_id", entry.ID)
		}
		if err := queueRepo.CompleteBuildingQueue(entry.ID); err != nil {
			return 0, err
		}
	}

	return len(due), nil
}

func (s *GameTickService) processTrainingQueues(tx *gorm.DB, now time.Time) (int, error) {
	queueRepo := s.queues.WithTx(tx)
	troopRepo := s.troops.WithTx(tx)

	due, err := queueRepo.DueTrainingQueues(now)
	if err != nil {
		return 0, err
	}

	for _, entry := range due {
		if err := troopRepo.AddTroops(entry.VillageID, entry.UnitType, entry.Count); err != nil {
			return 0, err
		}
		if err := queueRepo.CompleteTrainingQueue(entry.ID); err != nil {
			return 0, err
		}
	}

	return len(due), nil
}

// processMovements marks arrived movements completed. Arrival effects beyond
// that (combat, spying, reinforcement merge) belong to the battle subsystem,
// which reacts to the completed rows.
func (s *GameTickService) processMovements(tx *gorm.DB, now time.Time) (int, error) {
	queueRepo := s.queues.WithTx(tx)

	due, err := queueRepo.DueMovements(now)
	if err != nil {
		return 0, err
	}

	for _, movement := range due {
		if err := queueRepo.CompleteMovement(movement.ID); err != nil {
			return 0, err
		}
	}

	return len(due), nil
}

func (s *GameTickService) processGameEvents(tx *gorm.DB, now time.Time) (int, error) {
	queueRepo := s.queues.WithTx(tx)

	due, err := queueRepo.DueGameEvents(now)
	if err != nil {
		return 0, err
	}

	for _, event := range due {
		if err := queueRepo.CompleteGameEvent(event.ID); err != nil {
			return 0, err
		}
	}

	return len(due), nil
}

// updatePlayerStatistics recomputes per-player aggregates from current
// village state. Pure recomputation, not incremental. Village populations
// are re-read when construction completed this tick.
func (s *GameTickService) updatePlayerStatistics(tx *gorm.DB, villages []models.Village, completedBuildings int) error {
	villageRepo := s.villages.WithTx(tx)
	playerRepo := s.players.WithTx(tx)

	if completedBuildings > 0 {
		refreshed, err := villageRepo.ListActiveVillages()
		if err != nil {
			return err
		}
		villages = refreshed
	}

	type aggregate struct {
		population     int
		villagesCount  int
		buildingLevels int64
	}
	byPlayer := make(map[uint]*aggregate)

	for i := range villages {
		village := &villages[i]
		agg, ok := byPlayer[village.PlayerID]
		if !ok {
			agg = &aggregate{}
			byPlayer[village.PlayerID] = agg
		}
		agg.population += village.Population
		agg.villagesCount++
		for j := range village.Buildings {
			agg.buildingLevels += int64(village.Buildings[j].Level)
		}
	}

	for playerID, agg := range byPlayer {
		points := int64(agg.population)*10 + agg.buildingLevels
		if err := playerRepo.UpdateAggregates(playerID, agg.population, agg.villagesCount, points); err != nil {
			return err
		}
	}

	return nil
}

// GetGameTickStatus reports the last committed tick and the pending queue
// counts. Reads the guard marker even when it has expired.
func (s *GameTickService) GetGameTickStatus() (*TickStatus, error) {
	status := &TickStatus{}

	value, ok, err := s.guard.GetStale(TickGuardKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if ts, parseErr := time.Parse(time.RFC3339Nano, value); parseErr == nil {
			status.LastTick = &ts
		}
	}

	buildings, training, movements, events, err := s.queues.PendingCounts()
	if err != nil {
		return nil, err
	}
	status.PendingBuildings = buildings
	status.PendingTraining = training
	status.PendingMovements = movements
	status.PendingEvents = events

	return status, nil
}

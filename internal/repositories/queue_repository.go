package repositories

import (
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

type QueueRepository struct {
	db *gorm.DB
}

func NewQueueRepository(db *gorm.DB) *QueueRepository {
	return &QueueRepository{db: db}
}

func (r *QueueRepository) WithTx(tx *gorm.DB) *QueueRepository {
	return &QueueRepository{db: tx}
}

func (r *QueueRepository) CreateBuildingQueue(queue *models.BuildingQueue) error {
	if err := r.db.Create(queue).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create building queue entry")
	}
	return nil
}

func (r *QueueRepository) CreateTrainingQueue(queue *models.TrainingQueue) error {
	if err := r.db.Create(queue).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create training queue entry")
	}
	return nil
}

func (r *QueueRepository) CreateMovement(movement *models.Movement) error {
	if err := r.db.Create(movement).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create movement")
	}
	return nil
}

func (r *QueueRepository) CreateGameEvent(event *models.GameEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create game event")
	}
	return nil
}

// HasPendingBuildingQueue reports whether a not-yet-completed queue entry
// exists for the building.
func (r *QueueRepository) HasPendingBuildingQueue(buildingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.BuildingQueue{}).
		Where("building_id = ? AND is_completed = ?", buildingID, false).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternalError, "failed to check pending building queue")
	}
	return count > 0, nil
}

func (r *QueueRepository) DueBuildingQueues(now time.Time) ([]models.BuildingQueue, error) {
	var queues []models.BuildingQueue
	err := r.db.Where("is_completed = ? AND completed_at <= ?", false, now).
		Order("completed_at").
		Find(&queues).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list due building queues")
	}
	return queues, nil
}

func (r *QueueRepository) DueTrainingQueues(now time.Time) ([]models.TrainingQueue, error) {
	var queues []models.TrainingQueue
	err := r.db.Where("is_completed = ? AND completed_at <= ?", false, now).
		Order("completed_at").
		Find(&queues).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list due training queues")
	}
	return queues, nil
}

func (r *QueueRepository) DueMovements(now time.Time) ([]models.Movement, error) {
	var movements []models.Movement
	err := r.db.Where("is_completed = ? AND arrives_at <= ?", false, now).
		Order("arrives_at").
		Find(&movements).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list due movements")
	}
	return movements, nil
}

func (r *QueueRepository) DueGameEvents(now time.Time) ([]models.GameEvent, error) {
	var events []models.GameEvent
	err := r.db.Where("is_completed = ? AND triggered_at <= ?", false, now).
		Order("triggered_at").
		Find(&events).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list due game events")
	}
	return events, nil
}

func (r *QueueRepository) CompleteBuildingQueue(id uint) error {
	return r.complete(&models.BuildingQueue{}, id)
}

func (r *QueueRepository) CompleteTrainingQueue(id uint) error {
	return r.complete(&models.TrainingQueue{}, id)
}

func (r *QueueRepository) CompleteMovement(id uint) error {
	return r.complete(&models.Movement{}, id)
}

func (r *QueueRepository) CompleteGameEvent(id uint) error {
	return r.complete(&models.GameEvent{}, id)
}

func (r *QueueRepository) complete(model interface{}, id uint) error {
	err := r.db.Model(model).Where("id = ?", id).Update("is_completed", true).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to complete queue entry")
	}
	return nil
}

// PendingCounts reports not-yet-completed entries per queue table, for the
// tick status diagnostic.
func (r *QueueRepository) PendingCounts() (buildings, training, movements, events int64, err error) {
	if err = r.db.Model(&models.BuildingQueue{}).Where("is_completed = ?", false).Count(&buildings).Error; err != nil {
		return 0, 0, 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count pending building queues")
	}
	if err = r.db.Model(&models.TrainingQueue{}).Where("is_completed = ?", false).Count(&training).Error; err != nil {
		return 0, 0, 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count pending training queues")
	}
	if err = r.db.Model(&models.Movement{}).Where("is_completed = ?", false).Count(&movements).Error; err != nil {
		return 0, 0, 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count pending movements")
	}
	if err = r.db.Model(&models.GameEvent{}).Where("is_completed = ?", false).Count(&events).Error; err != nil {
		return 0, 0, 0, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count pending game events")
	}
	return buildings, training, movements, events, nil
}

package repositories

import (
	"fmt"
	"sort"
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) WithTx(tx *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: tx}
}

func (r *ResourceRepository) GetVillageResources(villageID uint) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Where("village_id = ?", villageID).Order("type").Find(&resources).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get village resources")
	}
	return resources, nil
}

// SpendResources debits every requested type or nothing at all. Each debit is
// a conditional update guarded by the current amount, so a concurrent spend
// cannot push a ledger row negative; any failed condition rolls back the
// whole batch.
func (r *ResourceRepository) SpendResources(villageID uint, costs map[string]float64) error {
	types := make([]string, 0, len(costs))
	for resourceType := range costs {
		types = append(types, resourceType)
	}
	sort.Strings(types)

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, resourceType := range types {
			amount := costs[resourceType]
			if amount < 0 {
				return errors.New(errors.ErrCodeValidationFailed, "cost amounts must be non-negative")
			}

			result := tx.Model(&models.Resource{}).
				Where("village_id = ? AND type = ? AND amount >= ?", villageID, resourceType, amount).
				Update("amount", gorm.Expr("amount - ?", amount))
			if result.Error != nil {
				return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to debit resource")
			}
			if result.RowsAffected == 0 {
				return errors.New(errors.ErrCodeInsufficientResources,
					fmt.Sprintf("cannot spend %.2f %s for village %d", amount, resourceType, villageID))
			}
		}
		return nil
	})
}

// AddResources credits each type, clamped at the row's storage capacity.
// Overflow is discarded. Missing ledger rows are skipped.
func (r *ResourceRepository) AddResources(villageID uint, amounts map[string]float64) error {
	types := make([]string, 0, len(amounts))
	for resourceType := range amounts {
		types = append(types, resourceType)
	}
	sort.Strings(types)

	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, resourceType := range types {
			amount := amounts[resourceType]
			if amount < 0 {
				return errors.New(errors.ErrCodeValidationFailed, "credit amounts must be non-negative")
			}

			var resource models.Resource
			err := tx.Where("village_id = ? AND type = ?", villageID, resourceType).First(&resource).Error
			if err == gorm.ErrRecordNotFound {
				continue
			}
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load resource")
			}

			newAmount := resource.Amount + amount
			if newAmount > resource.StorageCapacity {
				newAmount = resource.StorageCapacity
			}
			if err := tx.Model(&resource).Update("amount", newAmount).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to credit resource")
			}
		}
		return nil
	})
}

// SaveAccrual persists one accrual step: the new amount, the refreshed rate
// and capacity, and the advanced last_updated timestamp.
func (r *ResourceRepository) SaveAccrual(resourceID uint, amount, rate, capacity float64, now time.Time) error {
	err := r.db.Model(&models.Resource{}).Where("id = ?", resourceID).Updates(map[string]interface{}{
		"amount":           amount,
		"production_rate":  rate,
		"storage_capacity": capacity,
		"last_updated":     now,
	}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to save resource accrual")
	}
	return nil
}

func (r *ResourceRepository) UpdateCapacity(resourceID uint, capacity float64) error {
	err := r.db.Model(&models.Resource{}).Where("id = ?", resourceID).
		Update("storage_capacity", capacity).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update storage capacity")
	}
	return nil
}

func (r *ResourceRepository) CreateProductionLog(log *models.ResourceProductionLog) error {
	if err := r.db.Create(log).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create production log")
	}
	return nil
}

func (r *ResourceRepository) ListProductionLogs(villageID uint, limit int) ([]models.ResourceProductionLog, error) {
	var logs []models.ResourceProductionLog
	err := r.db.Where("village_id = ?", villageID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list production logs")
	}
	return logs, nil
}

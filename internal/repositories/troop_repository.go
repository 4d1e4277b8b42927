package repositories

import (
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

type TroopRepository struct {
	db *gorm.DB
}

func NewTroopRepository(db *gorm.DB) *TroopRepository {
	return &TroopRepository{db: db}
}

func (r *TroopRepository) WithTx(tx *gorm.DB) *TroopRepository {
	return &TroopRepository{db: tx}
}

// AddTroops increments the village's count for a unit type, creating the row
// on first training.
func (r *TroopRepository) AddTroops(villageID uint, unitType string, count int) error {
	if count <= 0 {
		return errors.New(errors.ErrCodeValidationFailed, "troop count must be positive")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var troop models.Troop
		err := tx.Where("village_id = ? AND unit_type = ?", villageID, unitType).First(&troop).Error
		if err == gorm.ErrRecordNotFound {
			troop = models.Troop{VillageID: villageID, UnitType: unitType, Count: count}
			if err := tx.Create(&troop).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create troop row")
			}
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to load troop row")
		}

		if err := tx.Model(&troop).Update("count", gorm.Expr("count + ?", count)).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to increment troop count")
		}
		return nil
	})
}

func (r *TroopRepository) GetVillageTroops(villageID uint) ([]models.Troop, error) {
	var troops []models.Troop
	err := r.db.Where("village_id = ?", villageID).Order("unit_type").Find(&troops).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get village troops")
	}
	return troops, nil
}

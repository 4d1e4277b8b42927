package repositories

import (
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

type VillageRepository struct {
	db *gorm.DB
}

func NewVillageRepository(db *gorm.DB) *VillageRepository {
	return &VillageRepository{db: db}
}

func (r *VillageRepository) WithTx(tx *gorm.DB) *VillageRepository {
	return &VillageRepository{db: tx}
}

// CreateVillage creates the village together with its four ledger rows.
func (r *VillageRepository) CreateVillage(village *models.Village, startingAmount float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(village).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create village")
		}

		now := time.Now().UTC()
		for _, resourceType := range models.ResourceTypes {
			resource := &models.Resource{
				VillageID:       village.ID,
				Type:            resourceType,
				Amount:          startingAmount,
				StorageCapacity: 1000,
				LastUpdated:     now,
			}
			if err := tx.Create(resource).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create resource ledger")
			}
		}

		if err := tx.Model(&models.Player{}).Where("id = ?", village.PlayerID).
			Update("villages_count", gorm.Expr("villages_count + 1")).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to bump villages count")
		}

		return nil
	})
}

func (r *VillageRepository) GetVillageByID(id uint) (*models.Village, error) {
	var village models.Village
	err := r.db.Preload("Buildings.Type").Preload("Resources").First(&village, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "village not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get village")
	}
	return &village, nil
}

// ListActiveVillages loads every active village with buildings and ledger
// rows eagerly, so a tick phase touches the tables once.
func (r *VillageRepository) ListActiveVillages() ([]models.Village, error) {
	var villages []models.Village
	err := r.db.Preload("Buildings.Type").Preload("Resources").
		Where("is_active = ?", true).
		Order("id").
		Find(&villages).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list active villages")
	}
	return villages, nil
}

func (r *VillageRepository) ListPlayerVillages(playerID uint) ([]models.Village, error) {
	var villages []models.Village
	err := r.db.Where("player_id = ?", playerID).Order("id").Find(&villages).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list player villages")
	}
	return villages, nil
}

func (r *VillageRepository) IncrementPopulation(villageID uint, delta int) error {
	err := r.db.Model(&models.Village{}).Where("id = ?", villageID).
		Update("population", gorm.Expr("population + ?", delta)).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update village population")
	}
	return nil
}

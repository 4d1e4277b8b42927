package repositories

import (
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

type BuildingRepository struct {
	db *gorm.DB
}

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) WithTx(tx *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: tx}
}

func (r *BuildingRepository) GetByID(id uint) (*models.Building, error) {
	var building models.Building
	if err := r.db.Preload("Type").First(&building, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "building not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get building")
	}
	return &building, nil
}

func (r *BuildingRepository) ListByVillage(villageID uint) ([]models.Building, error) {
	var buildings []models.Building
	err := r.db.Preload("Type").Where("village_id = ?", villageID).Find(&buildings).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to list buildings")
	}
	return buildings, nil
}

func (r *BuildingRepository) CreateBuilding(building *models.Building) error {
	if err := r.db.Create(building).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create building")
	}
	return nil
}

// IncrementLevel raises the building's level by one unless the type's max
// level has been reached. Returns false when the level was left unchanged.
func (r *BuildingRepository) IncrementLevel(buildingID uint) (bool, error) {
	result := r.db.Model(&models.Building{}).
		Where("id = ? AND level < (SELECT max_level FROM building_types WHERE building_types.id = buildings.building_type_id)", buildingID).
		Update("level", gorm.Expr("level + 1"))
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to increment building level")
	}
	return result.RowsAffected > 0, nil
}

func (r *BuildingRepository) GetTypeByKey(key string) (*models.BuildingType, error) {
	var buildingType models.BuildingType
	if err := r.db.Where("key = ?", key).First(&buildingType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "building type not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get building type")
	}
	return &buildingType, nil
}

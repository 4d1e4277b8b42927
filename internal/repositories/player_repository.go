package repositories

import (
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
	"gorm.io/gorm"
)

type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) WithTx(tx *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: tx}
}

func (r *PlayerRepository) CreatePlayer(player *models.Player) error {
	if err := r.db.Create(player).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return errors.New(errors.ErrCodeAlreadyExists, "player name is already taken")
		}
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create player")
	}
	return nil
}

func (r *PlayerRepository) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player
	if err := r.db.First(&player, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "player not found")
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get player")
	}
	return &player, nil
}

func (r *PlayerRepository) GetPlayerByName(name string) (*models.Player, error) {
	var player models.Player
	if err := r.db.Where("name = ?", name).First(&player).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get player by name")
	}
	return &player, nil
}

// UpdateAggregates overwrites the recomputed per-player statistics.
func (r *PlayerRepository) UpdateAggregates(playerID uint, population, villagesCount int, points int64) error {
	err := r.db.Model(&models.Player{}).Where("id = ?", playerID).Updates(map[string]interface{}{
		"population":     population,
		"villages_count": villagesCount,
		"points":         points,
	}).Error
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to update player aggregates")
	}
	return nil
}

func (r *PlayerRepository) GetLeaderboard(limit int) ([]models.Player, error) {
	var players []models.Player
	if err := r.db.Order("points DESC").Limit(limit).Find(&players).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to get player leaderboard")
	}
	return players, nil
}

func (r *PlayerRepository) GetPlayerRank(playerID uint) (int64, error) {
	player, err := r.GetPlayerByID(playerID)
	if err != nil {
		return 0, err
	}

	var rank int64
	err = r.db.Model(&models.Player{}).Where("points > ?", player.Points).Count(&rank).Error
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to compute player rank")
	}
	return rank + 1, nil
}

package services

import (
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/internal/repositories"
	"gorm.io/gorm"
)

const defaultLeaderboardSize = 25

// RankingService reads the per-player aggregates the tick engine maintains.
type RankingService struct {
	players *repositories.PlayerRepository
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{players: repositories.NewPlayerRepository(db)}
}

// Leaderboard returns the top players by points.
func (s *RankingService) Leaderboard(limit int) ([]models.Player, error) {
	if limit < 1 {
		limit = defaultLeaderboardSize
	}
	return s.players.GetLeaderboard(limit)
}

// Rank returns a player's 1-based position in the points ordering.
func (s *RankingService) Rank(playerID uint) (int64, error) {
	return s.players.GetPlayerRank(playerID)
}

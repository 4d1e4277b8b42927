package services

import (
	"testing"
	"time"

	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/errors"
)

func TestUpgradeCost(t *testing.T) {
	base := map[string]float64{"wood": 40, "clay": 100}

	tests := []struct {
		name         string
		currentLevel int
		wantWood     float64
		wantClay     float64
	}{
		{"level 1 pays base", 1, 40, 100},
		{"level 2 pays one factor", 2, 51.2, 128},
		{"level 3 pays compounded", 3, 65.54, 163.84},
		{"level below 1 clamps to base", 0, 40, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			costs := UpgradeCost(base, tt.currentLevel)
			if !almostEqual(costs["wood"], tt.wantWood) {
				t.Errorf("wood cost = %v, want %v", costs["wood"], tt.wantWood)
			}
			if !almostEqual(costs["clay"], tt.wantClay) {
				t.Errorf("clay cost = %v, want %v", costs["clay"], tt.wantClay)
			}
		})
	}
}

func TestUpgradeDuration(t *testing.T) {
	if got := UpgradeDuration(260, 1); got != 260*time.Second {
		t.Errorf("level 1 duration = %v, want 260s", got)
	}
	// 260 * 1.16^2 = 349.856 -> 350s
	if got := UpgradeDuration(260, 3); got != 350*time.Second {
		t.Errorf("level 3 duration = %v, want 350s", got)
	}
	for level := 1; level < 20; level++ {
		if UpgradeDuration(260, level+1) <= UpgradeDuration(260, level) {
			t.Fatalf("duration not increasing at level %d", level)
		}
	}
}

func TestStartUpgrade(t *testing.T) {
	w := newTestWorld(t)
	building := w.addBuilding(t, models.BuildingKeyWoodcutter, 1)

	now := time.Now().UTC()
	svc := NewConstructionService(w.db)
	svc.Now = func() time.Time { return now }

	queue, err := svc.StartUpgrade(w.village.ID, building.ID)
	if err != nil {
		t.Fatalf("StartUpgrade() error = %v", err)
	}
	if queue.TargetLevel != 2 {
		t.Errorf("target level = %d, want 2", queue.TargetLevel)
	}
	if want := now.Add(260 * time.Second); !queue.CompletedAt.Equal(want) {
		t.Errorf("completed_at = %v, want %v", queue.CompletedAt, want)
	}

	// base woodcutter cost at level 1: 40 wood, 100 clay, 50 iron, 60 crop
	wantLeft := map[string]float64{
		models.ResourceWood: 710,
		models.ResourceClay: 650,
		models.ResourceIron: 700,
		models.ResourceCrop: 690,
	}
	for resourceType, want := range wantLeft {
		got := w.getResource(t, resourceType).Amount
		if !almostEqual(got, want) {
			t.Errorf("%s after spend = %v, want %v", resourceType, got, want)
		}
	}
}

func TestStartUpgrade_Insufficient(t *testing.T) {
	w := newTestWorld(t)
	building := w.addBuilding(t, models.BuildingKeyWoodcutter, 1)
	w.setResource(t, models.ResourceClay, 10, 1000, time.Now().UTC())

	svc := NewConstructionService(w.db)
	_, err := svc.StartUpgrade(w.village.ID, building.ID)
	if !errors.HasCode(err, errors.ErrCodeInsufficientResources) {
		t.Fatalf("StartUpgrade() error = %v, want INSUFFICIENT_RESOURCES", err)
	}

	// the rejected spend must not leak a partial debit
	if got := w.getResource(t, models.ResourceWood).Amount; !almostEqual(got, 750) {
		t.Errorf("wood after rejection = %v, want 750", got)
	}

	var queueCount int64
	w.db.Model(&models.BuildingQueue{}).Count(&queueCount)
	if queueCount != 0 {
		t.Errorf("queue entries after rejection = %d, want 0", queueCount)
	}
}

func TestStartUpgrade_AlreadyQueued(t *testing.T) {
	w := newTestWorld(t)
	building := w.addBuilding(t, models.BuildingKeyWoodcutter, 1)

	svc := NewConstructionService(w.db)
	if _, err := svc.StartUpgrade(w.village.ID, building.ID); err != nil {
		t.Fatalf("first StartUpgrade() error = %v", err)
	}

	_, err := svc.StartUpgrade(w.village.ID, building.ID)
	if !errors.HasCode(err, errors.ErrCodeConflict) {
		t.Fatalf("second StartUpgrade() error = %v, want CONFLICT", err)
	}
}

func TestStartUpgrade_MaxLevel(t *testing.T) {
	w := newTestWorld(t)
	building := w.addBuilding(t, models.BuildingKeyWoodcutter, 20)

	svc := NewConstructionService(w.db)
	_, err := svc.StartUpgrade(w.village.ID, building.ID)
	if !errors.HasCode(err, errors.ErrCodeValidationFailed) {
		t.Fatalf("StartUpgrade() error = %v, want VALIDATION_FAILED", err)
	}
}

func TestStartUpgrade_ForeignVillage(t *testing.T) {
	w := newTestWorld(t)
	building := w.addBuilding(t, models.BuildingKeyWoodcutter, 1)

	svc := NewConstructionService(w.db)
	_, err := svc.StartUpgrade(w.village.ID+1, building.ID)
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("StartUpgrade() error = %v, want NOT_FOUND", err)
	}
}

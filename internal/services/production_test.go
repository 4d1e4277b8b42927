package services

import (
	"testing"

	"github.com/mhakimi/tribeland/internal/models"
)

func TestCalculateProductionRate_ExponentialLaw(t *testing.T) {
	tests := []struct {
		name  string
		base  float64
		level int
		want  float64
	}{
		{
			name:  "Level 1 yields base rate",
			base:  100,
			level: 1,
			want:  100,
		},
		{
			name:  "Base 100 level 5",
			base:  100,
			level: 5,
			want:  146.41,
		},
		{
			name:  "Base 10 level 3",
			base:  10,
			level: 3,
			want:  12.1,
		},
		{
			name:  "Level 0 contributes nothing",
			base:  100,
			level: 0,
			want:  0,
		},
		{
			name:  "Negative level contributes nothing",
			base:  100,
			level: -3,
			want:  0,
		},
		{
			name:  "Zero base contributes nothing",
			base:  0,
			level: 10,
			want:  0,
		},
		{
			name:  "Negative base contributes nothing",
			base:  -5,
			level: 2,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProductionRate(tt.base, tt.level)
			if got != tt.want {
				t.Errorf("CalculateProductionRate(%v, %d) = %v, want %v", tt.base, tt.level, got, tt.want)
			}
		})
	}
}

func TestCalculateProductionRate_StrictlyIncreasing(t *testing.T) {
	prev := 0.0
	for level := 1; level <= 20; level++ {
		rate := CalculateProductionRate(100, level)
		if rate <= prev {
			t.Fatalf("rate at level %d (%v) is not greater than level %d (%v)", level, rate, level-1, prev)
		}
		prev = rate
	}
}

func TestCalculateResourceProduction(t *testing.T) {
	village := &models.Village{
		Buildings: []models.Building{
			{
				Level:    3,
				IsActive: true,
				Type:     models.BuildingType{Key: "woodcutter", Production: `{"wood": 10}`},
			},
			{
				Level:    1,
				IsActive: true,
				Type:     models.BuildingType{Key: "clay_pit", Production: `{"clay": 10}`},
			},
			{
				Level:    5,
				IsActive: true,
				Type:     models.BuildingType{Key: "warehouse"}, // no production data
			},
			{
				Level:    4,
				IsActive: false,
				Type:     models.BuildingType{Key: "iron_mine", Production: `{"iron": 10}`},
			},
		},
	}

	rates := CalculateResourceProduction(village)

	if rates[models.ResourceWood] != 12.1 {
		t.Errorf("wood rate = %v, want 12.1", rates[models.ResourceWood])
	}
	if rates[models.ResourceClay] != 10 {
		t.Errorf("clay rate = %v, want 10", rates[models.ResourceClay])
	}
	if rates[models.ResourceIron] != 0 {
		t.Errorf("iron rate = %v, want 0 (building inactive)", rates[models.ResourceIron])
	}
	if rates[models.ResourceCrop] != 0 {
		t.Errorf("crop rate = %v, want 0 (no producers)", rates[models.ResourceCrop])
	}
}

func TestCalculateResourceProduction_MultipleProducersSum(t *testing.T) {
	village := &models.Village{
		Buildings: []models.Building{
			{Level: 1, IsActive: true, Type: models.BuildingType{Key: "woodcutter", Production: `{"wood": 10}`}},
			{Level: 2, IsActive: true, Type: models.BuildingType{Key: "woodcutter", Production: `{"wood": 10}`}},
		},
	}

	rates := CalculateResourceProduction(village)
	if rates[models.ResourceWood] != 21 {
		t.Errorf("wood rate = %v, want 21 (10 + 11)", rates[models.ResourceWood])
	}
}

func TestCalculateResourceProduction_NoBuildings(t *testing.T) {
	rates := CalculateResourceProduction(&models.Village{})
	for _, resourceType := range models.ResourceTypes {
		if rates[resourceType] != 0 {
			t.Errorf("%s rate = %v, want 0", resourceType, rates[resourceType])
		}
	}
}

func TestAccrueAmount(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		rate       float64
		elapsed    float64
		capacity   float64
		wantAmount float64
	}{
		{
			name:   "One hour at 10 per hour",
			amount: 1000, rate: 10, elapsed: 3600, capacity: 10000,
			wantAmount: 1010,
		},
		{
			name:   "Zero elapsed adds nothing",
			amount: 1000, rate: 10, elapsed: 0, capacity: 10000,
			wantAmount: 1000,
		},
		{
			name:   "Negative elapsed adds nothing",
			amount: 1000, rate: 10, elapsed: -50, capacity: 10000,
			wantAmount: 1000,
		},
		{
			name:   "Clamped at capacity",
			amount: 990, rate: 100, elapsed: 3600, capacity: 1000,
			wantAmount: 1000,
		},
		{
			name:   "Already at capacity stays",
			amount: 1000, rate: 100, elapsed: 3600, capacity: 1000,
			wantAmount: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, delta := AccrueAmount(tt.amount, tt.rate, tt.elapsed, tt.capacity)
			if !almostEqual(got, tt.wantAmount) {
				t.Errorf("AccrueAmount() amount = %v, want %v", got, tt.wantAmount)
			}
			if !almostEqual(delta, tt.wantAmount-tt.amount) {
				t.Errorf("AccrueAmount() delta = %v, want %v", delta, tt.wantAmount-tt.amount)
			}
		})
	}
}

func TestAccrueAmount_RapidReinvocation(t *testing.T) {
	amount := 1000.0
	amount, _ = AccrueAmount(amount, 10, 3600, 10000)
	again, delta := AccrueAmount(amount, 10, 0.001, 10000)

	if delta > 0.0001 {
		t.Errorf("near-zero elapsed produced delta %v, want ~0", delta)
	}
	if !almostEqual(again, amount) {
		t.Errorf("amount changed from %v to %v on near-zero elapsed", amount, again)
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-6
}

package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the immutable reference data for building and unit types.
// It is loaded from a YAML file when one is configured and falls back to the
// compiled-in defaults otherwise.
type Catalog struct {
	Buildings []BuildingDef `yaml:"buildings"`
	Units     []UnitDef     `yaml:"units"`
}

type BuildingDef struct {
	Key          string             `yaml:"key"`
	Name         string             `yaml:"name"`
	MaxLevel     int                `yaml:"max_level"`
	Production   map[string]float64 `yaml:"production,omitempty"` // resource -> base rate per hour
	BaseCost     map[string]float64 `yaml:"base_cost,omitempty"`
	BuildSeconds int                `yaml:"build_seconds"`
}

type UnitDef struct {
	Key          string             `yaml:"key"`
	Name         string             `yaml:"name"`
	Cost         map[string]float64 `yaml:"cost"`
	TrainSeconds int                `yaml:"train_seconds"`
}

// Default returns the built-in world catalog.
func Default() Catalog {
	return Catalog{
		Buildings: []BuildingDef{
			{
				Key: "woodcutter", Name: "Woodcutter", MaxLevel: 20,
				Production:   map[string]float64{"wood": 10},
				BaseCost:     map[string]float64{"wood": 40, "clay": 100, "iron": 50, "crop": 60},
				BuildSeconds: 260,
			},
			{
				Key: "clay_pit", Name: "Clay Pit", MaxLevel: 20,
				Production:   map[string]float64{"clay": 10},
				BaseCost:     map[string]float64{"wood": 80, "clay": 40, "iron": 80, "crop": 50},
				BuildSeconds: 220,
			},
			{
				Key: "iron_mine", Name: "Iron Mine", MaxLevel: 20,
				Production:   map[string]float64{"iron": 10},
				BaseCost:     map[string]float64{"wood": 100, "clay": 80, "iron": 30, "crop": 60},
				BuildSeconds: 450,
			},
			{
				Key: "cropland", Name: "Cropland", MaxLevel: 20,
				Production:   map[string]float64{"crop": 10},
				BaseCost:     map[string]float64{"wood": 70, "clay": 90, "iron": 70, "crop": 20},
				BuildSeconds: 150,
			},
			{
				Key: "warehouse", Name: "Warehouse", MaxLevel: 20,
				BaseCost:     map[string]float64{"wood": 130, "clay": 160, "iron": 90, "crop": 40},
				BuildSeconds: 2000,
			},
			{
				Key: "granary", Name: "Granary", MaxLevel: 20,
				BaseCost:     map[string]float64{"wood": 80, "clay": 100, "iron": 70, "crop": 20},
				BuildSeconds: 1600,
			},
			{
				Key: "main_building", Name: "Main Building", MaxLevel: 20,
				BaseCost:     map[string]float64{"wood": 70, "clay": 40, "iron": 60, "crop": 20},
				BuildSeconds: 2620,
			},
			{
				Key: "barracks", Name: "Barracks", MaxLevel: 20,
				BaseCost:     map[string]float64{"wood": 210, "clay": 140, "iron": 260, "crop": 120},
				BuildSeconds: 2000,
			},
		},
		Units: []UnitDef{
			{Key: "spearman", Name: "Spearman", Cost: map[string]float64{"wood": 120, "clay": 100, "iron": 150, "crop": 30}, TrainSeconds: 1600},
			{Key: "swordsman", Name: "Swordsman", Cost: map[string]float64{"wood": 140, "clay": 150, "iron": 185, "crop": 60}, TrainSeconds: 1800},
			{Key: "scout", Name: "Scout", Cost: map[string]float64{"wood": 170, "clay": 150, "iron": 20, "crop": 40}, TrainSeconds: 1100},
		},
	}
}

// Load reads a catalog from a YAML file and validates it.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func (c Catalog) Validate() error {
	if len(c.Buildings) == 0 {
		return fmt.Errorf("catalog declares no building types")
	}

	seen := make(map[string]bool, len(c.Buildings))
	for _, b := range c.Buildings {
		if b.Key == "" {
			return fmt.Errorf("building type with empty key")
		}
		if seen[b.Key] {
			return fmt.Errorf("duplicate building type key %q", b.Key)
		}
		seen[b.Key] = true
		if b.MaxLevel < 1 {
			return fmt.Errorf("building type %q: max_level must be >= 1", b.Key)
		}
		for res, rate := range b.Production {
			if rate <= 0 {
				return fmt.Errorf("building type %q: production rate for %q must be > 0", b.Key, res)
			}
		}
	}

	units := make(map[string]bool, len(c.Units))
	for _, u := range c.Units {
		if u.Key == "" {
			return fmt.Errorf("unit type with empty key")
		}
		if units[u.Key] {
			return fmt.Errorf("duplicate unit type key %q", u.Key)
		}
		units[u.Key] = true
		if u.TrainSeconds < 1 {
			return fmt.Errorf("unit type %q: train_seconds must be >= 1", u.Key)
		}
	}
	return nil
}

// Building returns the definition for a building type key.
func (c Catalog) Building(key string) (BuildingDef, bool) {
	for _, b := range c.Buildings {
		if b.Key == key {
			return b, true
		}
	}
	return BuildingDef{}, false
}

// Unit returns the definition for a unit type key.
func (c Catalog) Unit(key string) (UnitDef, bool) {
	for _, u := range c.Units {
		if u.Key == key {
			return u, true
		}
	}
	return UnitDef{}, false
}

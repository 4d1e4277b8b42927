package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mhakimi/tribeland/internal/catalog"
	"github.com/mhakimi/tribeland/internal/config"
	"github.com/mhakimi/tribeland/internal/database"
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/internal/repositories"
	"github.com/mhakimi/tribeland/internal/security"
	"github.com/xuri/excelize/v2"
)

// Starter state for imported villages.
const (
	startingResourceAmount = 750
	startingBuildingLevel  = 1
)

var starterBuildingKeys = []string{
	models.BuildingKeyMainBuilding,
	models.BuildingKeyWoodcutter,
	models.BuildingKeyClayPit,
	models.BuildingKeyIronMine,
	models.BuildingKeyCropland,
}

// Bulk-loads players and villages from a spreadsheet. Expected columns per
// row: player name, village name, x, y, capital flag ("1"/"0").
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: import_world <world.xlsx>")
	}
	path := os.Args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate: ", err)
	}
	if err := database.SeedBuildingTypes(db, catalog.Default()); err != nil {
		log.Fatal("failed to seed building types: ", err)
	}

	players := repositories.NewPlayerRepository(db)
	villages := repositories.NewVillageRepository(db)
	buildings := repositories.NewBuildingRepository(db)

	f, err := excelize.OpenFile(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	totalImported := 0

	for _, sheetName := range f.GetSheetList() {
		fmt.Printf("Importing sheet: %s\n", sheetName)
		rows, err := f.GetRows(sheetName)
		if err != nil {
			fmt.Printf("Error reading sheet %s: %v\n", sheetName, err)
			continue
		}

		for i, row := range rows {
			if i == 0 || len(row) < 4 { // Skip header or invalid rows
				continue
			}

			playerName := security.SanitizeName(row[0])
			villageName := security.SanitizeName(row[1])
			if !security.ValidateName(playerName) || !security.ValidateName(villageName) {
				fmt.Printf("Skipping row %d: invalid name\n", i)
				continue
			}

			x, errX := strconv.Atoi(row[2])
			y, errY := strconv.Atoi(row[3])
			if errX != nil || errY != nil {
				fmt.Printf("Skipping row %d: invalid coordinates\n", i)
				continue
			}

			isCapital := len(row) > 4 && row[4] == "1"

			player, err := players.GetPlayerByName(playerName)
			if err != nil {
				log.Fatal("failed to look up player: ", err)
			}
			if player == nil {
				player = &models.Player{Name: playerName, WorldID: cfg.WorldID}
				if err := players.CreatePlayer(player); err != nil {
					log.Fatal("failed to create player: ", err)
				}
			}

			village := &models.Village{
				Name:      villageName,
				PlayerID:  player.ID,
				WorldID:   cfg.WorldID,
				X:         x,
				Y:         y,
				IsCapital: isCapital,
			}
			if err := villages.CreateVillage(village, startingResourceAmount); err != nil {
				log.Fatal("failed to create village: ", err)
			}

			for _, key := range starterBuildingKeys {
				buildingType, err := buildings.GetTypeByKey(key)
				if err != nil {
					log.Fatal("missing starter building type: ", err)
				}
				building := &models.Building{
					VillageID:      village.ID,
					BuildingTypeID: buildingType.ID,
					Level:          startingBuildingLevel,
				}
				if err := buildings.CreateBuilding(building); err != nil {
					log.Fatal("failed to create starter building: ", err)
				}
			}

			totalImported++
		}
	}

	fmt.Printf("Imported %d villages\n", totalImported)
}

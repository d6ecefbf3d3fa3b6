package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

// Seeds the resource-type lookup. With no argument it re-applies the built-in
// set; with a CSV path it imports additional type names (one per row).
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db
	database.SeedResourceTypes(db)

	if len(os.Args) < 2 {
		log.Println("Resource types seeded.")
		return
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV file: %v", err)
	}

	imported := 0
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		name := strings.ToUpper(strings.TrimSpace(record[0]))
		if name == "" {
			continue
		}
		var rt courseModels.ResourceType
		if err := db.Where("name = ?", name).First(&rt).Error; err != nil {
			if err := db.Create(&courseModels.ResourceType{Name: name}).Error; err != nil {
				log.Printf("Failed to import resource type %q: %v", name, err)
				continue
			}
			imported++
		}
	}

	log.Printf("Resource types seeded, %d imported from CSV.", imported)
}

package database

import (
	"fmt"
	"log"
	"os"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// TranslateError makes unique violations surface as gorm.ErrDuplicatedKey,
	// which the lifecycle service maps to a retryable conflict
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	runMigrations(db)

	Database = DbInstance{Db: db}
}

// runMigrations performs database migrations and seeds the resource-type lookup
func runMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Area{},
		&models.Topic{},
		&models.TrainingRequest{},
		&models.ForumThread{},
		&courseModels.Course{},
		&courseModels.Section{},
		&courseModels.Resource{},
		&courseModels.ResourceType{},
		&courseModels.Enrollment{},
		&courseModels.CertificateRequest{},
		&courseModels.Certificate{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	SeedResourceTypes(db)

	log.Println("Migrations completed successfully.")
}

// SeedResourceTypes inserts the fixed resource kinds if they are missing
func SeedResourceTypes(db *gorm.DB) {
	for _, name := range []string{"DOCUMENT", "VIDEO", "LINK", "TEXT", "ARCHIVE"} {
		var rt courseModels.ResourceType
		if err := db.Where("name = ?", name).First(&rt).Error; err == gorm.ErrRecordNotFound {
			db.Create(&courseModels.ResourceType{Name: name})
		}
	}
}

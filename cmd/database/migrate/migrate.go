package migration

import (
	"fmt"
	"log"

	"pantry-tracker/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PantryItem{}); err != nil {
		log.Fatalf("Error migrating pantry item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SavedRecipe{}); err != nil {
		log.Fatalf("Error migrating saved recipe database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

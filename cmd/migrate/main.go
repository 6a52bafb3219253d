package main

import (
	"log"

	"civic-voice-be/internal/config"
	"civic-voice-be/internal/model"
	"civic-voice-be/pkg/database"
)

// Creates the knowledge_vectors table used when VECTOR_STORE=pgvector.
// Articles themselves live in Redis and need no migration.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running AutoMigrate for knowledge_vectors...")
	if err := database.Migrate(db, &model.KnowledgeVector{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}

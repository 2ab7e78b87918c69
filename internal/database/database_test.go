package database

import (
	"context"
	"testing"

	"filmorate/internal/config"
	"filmorate/internal/storage/dbstore"
)

func TestInitDBSQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "database"
	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = ":memory:"

	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	ratings, err := dbstore.New(db).Ratings.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(ratings) != 5 {
		t.Errorf("seeded ratings = %d, want 5", len(ratings))
	}
}

func TestInitDBUnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Driver = "oracle"
	if _, err := InitDB(cfg); err == nil {
		t.Error("InitDB should fail for unknown driver")
	}
}

package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/zaylux/zaylux-store-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB creates an in-memory sqlite database with the full schema,
// pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func createProduct(t *testing.T, db *gorm.DB, id string, quantity int, price float64) models.Product {
	t.Helper()
	product := models.Product{
		ID:        id,
		NameEN:    "Product " + id,
		NameAR:    "منتج " + id,
		Category:  "perfume",
		Price:     price,
		Quantity:  quantity,
		IsVisible: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

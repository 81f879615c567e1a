package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test. The named
// shared-cache DSN keeps every pooled connection on the same database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.EquipmentModel{}, &models.ReservationModel{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func createTestEquipment(t *testing.T, db *gorm.DB, name string, quantity int) *models.EquipmentModel {
	t.Helper()

	equipment := models.EquipmentModel{
		Name:      name,
		Category:  "Electronics",
		Condition: "Good",
		Quantity:  quantity,
	}
	require.NoError(t, db.Create(&equipment).Error)
	return &equipment
}

func createTestUser(t *testing.T, db *gorm.DB, email, role, sclass string) *models.UserModel {
	t.Helper()

	user := models.UserModel{
		Name:     strings.Split(email, "@")[0],
		Email:    email,
		Password: "hashed",
		Role:     role,
		Sclass:   sclass,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestReservation(t *testing.T, db *gorm.DB, userId, equipmentId, quantity int, status string, fromDate, toDate time.Time) *models.ReservationModel {
	t.Helper()

	reservation := models.ReservationModel{
		UserId:      userId,
		EquipmentId: &equipmentId,
		Quantity:    quantity,
		FromDate:    fromDate,
		ToDate:      toDate,
		Status:      status,
	}
	require.NoError(t, db.Create(&reservation).Error)
	return &reservation
}

func equipmentQuantity(t *testing.T, db *gorm.DB, id int) int {
	t.Helper()

	var equipment models.EquipmentModel
	require.NoError(t, db.First(&equipment, id).Error)
	return equipment.Quantity
}

func reservationStatus(t *testing.T, db *gorm.DB, id int) string {
	t.Helper()

	var reservation models.ReservationModel
	require.NoError(t, db.First(&reservation, id).Error)
	return reservation.Status
}

package seed

import (
	"errors"
	"log"
	"os"

	"github.com/EquipHub/EquipHub-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin provisions the bootstrap administrator account at first boot.
// Keyed on role, so re-running it is a no-op once any admin exists.
func EnsureAdmin(db *gorm.DB) error {
	var admin models.UserModel
	result := db.Where("role = ?", models.RoleAdmin).First(&admin)
	if result.Error == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin@123"
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	newAdmin := models.UserModel{
		Name:     "System Administrator",
		Email:    "admin@equiphub.local",
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&newAdmin).Error; err != nil {
		return err
	}
	log.Println("Admin user created")
	return nil
}

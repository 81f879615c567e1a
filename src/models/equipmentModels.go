package models

import "time"

// Closed enumerations for equipment classification.
var (
	EquipmentCategories = []string{"Electronics", "Furniture", "Sports Equipment", "Laboratory Equipment"}
	EquipmentConditions = []string{"Excellent", "Good", "Fair", "Damaged"}
)

type EquipmentModel struct {
	Id        int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Category  string    `json:"category" gorm:"not null"`
	Condition string    `json:"condition" gorm:"not null;default:Good"`
	Quantity  int       `json:"quantity" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsValidCategory reports whether category belongs to the closed enumeration.
func IsValidCategory(category string) bool {
	for _, c := range EquipmentCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidCondition reports whether condition belongs to the closed enumeration.
func IsValidCondition(condition string) bool {
	for _, c := range EquipmentConditions {
		if c == condition {
			return true
		}
	}
	return false
}

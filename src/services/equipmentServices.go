package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/apperrors"
	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type EquipmentService struct {
	db *gorm.DB
}

// NewEquipmentService creates a new instance of EquipmentService
func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{db: db}
}

// CreateEquipment creates a new Equipment record in the database
func (s *EquipmentService) CreateEquipment(dto *dtos.CreateEquipmentDTO) (*models.EquipmentModel, error) {
	if strings.TrimSpace(dto.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if !models.IsValidCategory(dto.Category) {
		return nil, fmt.Errorf("%w: invalid category %q", apperrors.ErrValidation, dto.Category)
	}
	if !models.IsValidCondition(dto.Condition) {
		return nil, fmt.Errorf("%w: invalid condition %q", apperrors.ErrValidation, dto.Condition)
	}
	if dto.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
	}

	equipment := models.EquipmentModel{
		Name:      dto.Name,
		Category:  dto.Category,
		Condition: dto.Condition,
		Quantity:  dto.Quantity,
	}
	if err := s.db.Create(&equipment).Error; err != nil {
		return nil, err
	}
	return &equipment, nil
}

// GetEquipmentByID retrieves an Equipment record by its ID
func (s *EquipmentService) GetEquipmentByID(id int) (*models.EquipmentModel, error) {
	var equipment models.EquipmentModel
	if err := s.db.First(&equipment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: equipment %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &equipment, nil
}

// QueryEquipment retrieves a page of Equipment records filtered by a
// case-insensitive name substring and exact category/condition matches,
// sorted by creation time descending.
func (s *EquipmentService) QueryEquipment(search, category, condition string, page, limit int) ([]models.EquipmentModel, dtos.Pagination, error) {
	query := s.db.Model(&models.EquipmentModel{})

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}
	if condition != "" {
		query = query.Where("LOWER(condition) = ?", strings.ToLower(condition))
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, dtos.Pagination{}, err
	}

	var equipment []models.EquipmentModel
	err := query.
		Order("created_at DESC, id DESC").
		Offset(dtos.Offset(page, limit)).
		Limit(limit).
		Find(&equipment).Error
	if err != nil {
		return nil, dtos.Pagination{}, err
	}

	return equipment, dtos.NewPagination(totalCount, page, limit), nil
}

// UpdateEquipment updates an existing Equipment record
func (s *EquipmentService) UpdateEquipment(id int, dto *dtos.UpdateEquipmentDTO) (*models.EquipmentModel, error) {
	updates := map[string]interface{}{}
	if dto.Name != "" {
		updates["name"] = dto.Name
	}
	if dto.Category != "" {
		if !models.IsValidCategory(dto.Category) {
			return nil, fmt.Errorf("%w: invalid category %q", apperrors.ErrValidation, dto.Category)
		}
		updates["category"] = dto.Category
	}
	if dto.Condition != "" {
		if !models.IsValidCondition(dto.Condition) {
			return nil, fmt.Errorf("%w: invalid condition %q", apperrors.ErrValidation, dto.Condition)
		}
		updates["condition"] = dto.Condition
	}
	if dto.Quantity != nil {
		if *dto.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", apperrors.ErrValidation)
		}
		updates["quantity"] = *dto.Quantity
	}

	var equipment models.EquipmentModel
	if err := s.db.First(&equipment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: equipment %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(&equipment).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &equipment, nil
}

// DeleteEquipment deletes an Equipment record by its ID. Outstanding
// reservations keep running; the return paths tolerate the missing item.
func (s *EquipmentService) DeleteEquipment(id int) error {
	result := s.db.Delete(&models.EquipmentModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: equipment %d", apperrors.ErrNotFound, id)
	}
	return nil
}

// AdjustQuantity applies quantity += delta as a single conditional UPDATE so
// concurrent adjustments against the same item cannot lose updates or drive
// the counter below zero. Pass tx to run inside an enclosing transaction,
// or nil to run against the base connection.
func (s *EquipmentService) AdjustQuantity(tx *gorm.DB, id, delta int) error {
	if tx == nil {
		tx = s.db
	}

	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the item is gone or the guard failed.
	var count int64
	if err := tx.Model(&models.EquipmentModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: equipment %d", apperrors.ErrNotFound, id)
	}
	return fmt.Errorf("%w: equipment %d cannot be adjusted by %d", apperrors.ErrInsufficientInventory, id, delta)
}

// ExportInventoryXLSX renders the full equipment table as an XLSX workbook
// for the admin inventory report.
func (s *EquipmentService) ExportInventoryXLSX() ([]byte, error) {
	var equipment []models.EquipmentModel
	if err := s.db.Order("category, name").Find(&equipment).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Category", "Condition", "Quantity", "Created At"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, item := range equipment {
		values := []interface{}{item.Id, item.Name, item.Category, item.Condition, item.Quantity, item.CreatedAt.Format(time.RFC3339)}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/apperrors"
	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"gorm.io/gorm"
)

// MaxReservationDays caps the loan window length.
const MaxReservationDays = 30

type ReservationService struct {
	db        *gorm.DB
	equipment *EquipmentService
}

// NewReservationService creates a new instance of ReservationService
func NewReservationService(db *gorm.DB, equipment *EquipmentService) *ReservationService {
	return &ReservationService{db: db, equipment: equipment}
}

// RequestEquipment creates a PENDING reservation for the given equipment.
// Availability is only checked advisorily here; nothing is subtracted from
// the pool until staff accepts the reservation.
func (s *ReservationService) RequestEquipment(userId, equipmentId, quantity int, fromDate, toDate time.Time) (*models.ReservationModel, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", apperrors.ErrValidation)
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: end date cannot be before start date", apperrors.ErrValidation)
	}
	if toDate.Sub(fromDate) > MaxReservationDays*24*time.Hour {
		return nil, fmt.Errorf("%w: reservation period cannot exceed %d days", apperrors.ErrValidation, MaxReservationDays)
	}
	if fromDate.Before(time.Now()) {
		return nil, fmt.Errorf("%w: start date cannot be in the past", apperrors.ErrValidation)
	}

	equipment, err := s.equipment.GetEquipmentByID(equipmentId)
	if err != nil {
		return nil, err
	}
	if equipment.Quantity < quantity {
		return nil, fmt.Errorf("%w: equipment has not enough quantity for request", apperrors.ErrValidation)
	}

	reservation := models.ReservationModel{
		UserId:      userId,
		EquipmentId: &equipmentId,
		Quantity:    quantity,
		FromDate:    fromDate,
		ToDate:      toDate,
		Status:      models.ReservationPending,
	}
	if err := s.db.Create(&reservation).Error; err != nil {
		return nil, err
	}
	reservation.Equipment = equipment
	return &reservation, nil
}

// AcceptReservation moves a PENDING reservation to ACTIVE and subtracts the
// reserved quantity from the equipment pool. The status flip and the
// inventory adjustment commit in one transaction, so a failed adjustment
// leaves the reservation PENDING. The conditional quantity update is the sole
// double-booking guard: the first accept against a depleted pool wins, later
// ones fail with ErrInsufficientInventory.
func (s *ReservationService) AcceptReservation(id int) (*models.ReservationModel, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reservation models.ReservationModel
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", apperrors.ErrNotFound, id)
			}
			return err
		}

		// Status flip is conditional on PENDING so a concurrent accept of the
		// same reservation cannot subtract the quantity twice.
		result := tx.Model(&models.ReservationModel{}).
			Where("id = ? AND status = ?", id, models.ReservationPending).
			Update("status", models.ReservationActive)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: reservation %d is not pending", apperrors.ErrInvalidTransition, id)
		}

		if reservation.EquipmentId == nil {
			return fmt.Errorf("%w: equipment for reservation %d", apperrors.ErrNotFound, id)
		}
		return s.equipment.AdjustQuantity(tx, *reservation.EquipmentId, -reservation.Quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.GetReservationByID(id)
}

// RejectReservation moves a PENDING reservation to REJECTED. No inventory was
// ever taken for it, so there is nothing to credit back.
func (s *ReservationService) RejectReservation(id int) (*models.ReservationModel, error) {
	var reservation models.ReservationModel
	if err := s.db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}

	result := s.db.Model(&models.ReservationModel{}).
		Where("id = ? AND status = ?", id, models.ReservationPending).
		Update("status", models.ReservationRejected)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: only pending reservations can be rejected", apperrors.ErrInvalidTransition)
	}
	return s.GetReservationByID(id)
}

// ReturnEquipment moves an ACTIVE reservation to RETURNED and credits the
// reserved quantity back to the equipment pool. Only the reservation owner,
// staff or an admin may return it. Returning twice fails with
// ErrAlreadyReturned and credits the pool exactly once.
func (s *ReservationService) ReturnEquipment(id, actorId int, actorRole string) (*models.ReservationModel, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var reservation models.ReservationModel
		if err := tx.First(&reservation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: reservation %d", apperrors.ErrNotFound, id)
			}
			return err
		}

		if reservation.UserId != actorId && actorRole != models.RoleStaff && actorRole != models.RoleAdmin {
			return fmt.Errorf("%w: not allowed to return this equipment", apperrors.ErrForbidden)
		}
		if reservation.Status == models.ReservationReturned {
			return fmt.Errorf("%w: equipment already returned", apperrors.ErrAlreadyReturned)
		}
		if reservation.Status != models.ReservationActive {
			return fmt.Errorf("%w: reservation %d is not active", apperrors.ErrInvalidTransition, id)
		}

		now := time.Now()
		result := tx.Model(&models.ReservationModel{}).
			Where("id = ? AND status = ?", id, models.ReservationActive).
			Updates(map[string]interface{}{
				"status":      models.ReservationReturned,
				"returned_at": now,
				"updated_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: equipment already returned", apperrors.ErrAlreadyReturned)
		}

		if reservation.EquipmentId == nil {
			// Equipment was deleted while on loan, nothing to credit back.
			return nil
		}
		err := s.equipment.AdjustQuantity(tx, *reservation.EquipmentId, reservation.Quantity)
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.GetReservationByID(id)
}

// GetReservationByID retrieves a Reservation record with its equipment and user loaded
func (s *ReservationService) GetReservationByID(id int) (*models.ReservationModel, error) {
	var reservation models.ReservationModel
	err := s.db.
		Preload("Equipment").
		Preload("User").
		First(&reservation, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: reservation %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &reservation, nil
}

// MyReservations retrieves a page of the user's reservations, optionally
// filtered by status and by an equipment name/category search.
func (s *ReservationService) MyReservations(userId int, search, status string, page, limit int) ([]models.ReservationModel, dtos.Pagination, error) {
	query := s.db.Model(&models.ReservationModel{}).Where("user_id = ?", userId)

	if status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(status))
	}

	if search = strings.TrimSpace(search); search != "" {
		equipmentIds, err := s.matchingEquipmentIds(search, "")
		if err != nil {
			return nil, dtos.Pagination{}, err
		}
		// No equipment matches the search, so no reservation can either.
		if len(equipmentIds) == 0 {
			return []models.ReservationModel{}, dtos.NewPagination(0, page, limit), nil
		}
		query = query.Where("equipment_id IN ?", equipmentIds)
	}

	return s.pageReservations(query, page, limit)
}

// AllReservations retrieves a page of all reservations for staff and admins.
// Staff only see reservations from students in their own class; a staff
// member without an assigned class gets an error rather than everything.
func (s *ReservationService) AllReservations(actorId int, actorRole, search, category, status string, page, limit int) ([]models.ReservationModel, dtos.Pagination, error) {
	query := s.db.Model(&models.ReservationModel{})

	if actorRole == models.RoleStaff {
		var staff models.UserModel
		if err := s.db.First(&staff, actorId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, dtos.Pagination{}, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, actorId)
			}
			return nil, dtos.Pagination{}, err
		}
		if staff.Sclass == "" {
			return nil, dtos.Pagination{}, fmt.Errorf("%w: staff member must be assigned to a class", apperrors.ErrValidation)
		}

		var studentIds []int
		err := s.db.Model(&models.UserModel{}).
			Where("role = ? AND sclass = ?", models.RoleStudent, staff.Sclass).
			Pluck("id", &studentIds).Error
		if err != nil {
			return nil, dtos.Pagination{}, err
		}
		if len(studentIds) == 0 {
			return []models.ReservationModel{}, dtos.NewPagination(0, page, limit), nil
		}
		query = query.Where("user_id IN ?", studentIds)
	}

	if status != "" {
		query = query.Where("LOWER(status) = ?", strings.ToLower(status))
	}

	if search, category = strings.TrimSpace(search), strings.TrimSpace(category); search != "" || category != "" {
		equipmentIds, err := s.matchingEquipmentIds(search, category)
		if err != nil {
			return nil, dtos.Pagination{}, err
		}
		if len(equipmentIds) == 0 {
			return []models.ReservationModel{}, dtos.NewPagination(0, page, limit), nil
		}
		query = query.Where("equipment_id IN ?", equipmentIds)
	}

	return s.pageReservations(query, page, limit)
}

// matchingEquipmentIds resolves a text search (and optional exact category
// filter) into equipment IDs. With a category filter active the search only
// covers the name; otherwise it covers name and category.
func (s *ReservationService) matchingEquipmentIds(search, category string) ([]int, error) {
	query := s.db.Model(&models.EquipmentModel{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		if category != "" {
			query = query.Where("LOWER(name) LIKE ?", pattern)
		} else {
			query = query.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern)
		}
	}
	if category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var ids []int
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *ReservationService) pageReservations(query *gorm.DB, page, limit int) ([]models.ReservationModel, dtos.Pagination, error) {
	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, dtos.Pagination{}, err
	}

	var reservations []models.ReservationModel
	err := query.
		Preload("Equipment").
		Preload("User").
		Order("created_at DESC, id DESC").
		Offset(dtos.Offset(page, limit)).
		Limit(limit).
		Find(&reservations).Error
	if err != nil {
		return nil, dtos.Pagination{}, err
	}

	return reservations, dtos.NewPagination(totalCount, page, limit), nil
}

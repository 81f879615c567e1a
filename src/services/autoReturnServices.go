package services

import (
	"errors"
	"log"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/apperrors"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"gorm.io/gorm"
)

// AutoReturnService reclaims equipment from ACTIVE reservations whose loan
// window has elapsed without an explicit return. It runs on a fixed interval
// in the background and is also invoked before inventory reads and
// reservation mutations as a best-effort top-up, so inventory figures are
// never stale with respect to elapsed loan windows.
type AutoReturnService struct {
	db        *gorm.DB
	equipment *EquipmentService
}

// NewAutoReturnService creates a new instance of AutoReturnService
func NewAutoReturnService(db *gorm.DB, equipment *EquipmentService) *AutoReturnService {
	return &AutoReturnService{db: db, equipment: equipment}
}

// Start runs the expiry sweep every interval until the process exits.
func (s *AutoReturnService) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			s.ProcessExpiredReservations(time.Now())
		}
	}()
}

// ProcessExpiredReservations returns every ACTIVE reservation whose toDate has
// elapsed. Each reservation is processed in its own transaction; a failure is
// logged and skipped so it cannot block the others or the triggering request.
func (s *AutoReturnService) ProcessExpiredReservations(now time.Time) {
	var expired []models.ReservationModel
	err := s.db.
		Where("status = ? AND to_date <= ?", models.ReservationActive, now).
		Find(&expired).Error
	if err != nil {
		log.Printf("auto-return: failed to list expired reservations: %v", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	log.Printf("auto-return: processing %d expired reservations", len(expired))

	for _, reservation := range expired {
		if err := s.returnExpired(&reservation, now); err != nil {
			log.Printf("auto-return: reservation %d: %v", reservation.Id, err)
			continue
		}
		log.Printf("auto-return: reservation %d returned %d unit(s)", reservation.Id, reservation.Quantity)
	}
}

// returnExpired forces one expired reservation back to RETURNED and credits
// the pool. The status flip is conditional on ACTIVE, so a concurrent sweep
// or an explicit return racing this one can never credit inventory twice.
func (s *AutoReturnService) returnExpired(reservation *models.ReservationModel, now time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.ReservationModel{}).
			Where("id = ? AND status = ?", reservation.Id, models.ReservationActive).
			Updates(map[string]interface{}{
				"status":      models.ReservationReturned,
				"returned_at": now,
				"updated_at":  now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Someone else already returned it.
			return nil
		}

		if reservation.EquipmentId == nil {
			log.Printf("auto-return: equipment missing for reservation %d, nothing to credit", reservation.Id)
			return nil
		}
		err := s.equipment.AdjustQuantity(tx, *reservation.EquipmentId, reservation.Quantity)
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("auto-return: equipment %d deleted, reservation %d returned without credit", *reservation.EquipmentId, reservation.Id)
			return nil
		}
		return err
	})
}

package models

import "time"

// Reservation statuses. Initial status is PENDING; RETURNED and REJECTED are terminal.
const (
	ReservationPending  = "PENDING"
	ReservationActive   = "ACTIVE"
	ReservationReturned = "RETURNED"
	ReservationRejected = "REJECTED"
)

type ReservationModel struct {
	Id          int             `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId      int             `json:"userId" gorm:"column:user_id;not null;index"`
	User        *UserModel      `json:"user,omitempty" gorm:"foreignKey:UserId;references:Id"`
	EquipmentId *int            `json:"equipmentId" gorm:"column:equipment_id;index"`
	Equipment   *EquipmentModel `json:"equipment,omitempty" gorm:"foreignKey:EquipmentId;references:Id;constraint:OnDelete:SET NULL"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	FromDate    time.Time       `json:"fromDate" gorm:"not null"`
	ToDate      time.Time       `json:"toDate" gorm:"not null;index"`
	Status      string          `json:"status" gorm:"not null;default:PENDING;index"`
	ReturnedAt  *time.Time      `json:"returnedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

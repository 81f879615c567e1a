package dtos

type CreateEquipmentDTO struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Quantity  int    `json:"quantity"`
}

type UpdateEquipmentDTO struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Condition string `json:"condition"`
	Quantity  *int   `json:"quantity"`
}

type RequestReservationDTO struct {
	Quantity int    `json:"quantity"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/EquipHub/EquipHub-Backend/src/apperrors"
	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestEquipmentService_CreateEquipment_Validation(t *testing.T) {
	tests := []struct {
		name string
		dto  dtos.CreateEquipmentDTO
	}{
		{"empty name", dtos.CreateEquipmentDTO{Name: " ", Category: "Electronics", Condition: "Good", Quantity: 1}},
		{"unknown category", dtos.CreateEquipmentDTO{Name: "Projector", Category: "Vehicles", Condition: "Good", Quantity: 1}},
		{"unknown condition", dtos.CreateEquipmentDTO{Name: "Projector", Category: "Electronics", Condition: "Broken", Quantity: 1}},
		{"negative quantity", dtos.CreateEquipmentDTO{Name: "Projector", Category: "Electronics", Condition: "Good", Quantity: -1}},
	}

	service := NewEquipmentService(setupTestDB(t))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateEquipment(&tt.dto)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestEquipmentService_CreateEquipment(t *testing.T) {
	service := NewEquipmentService(setupTestDB(t))

	equipment, err := service.CreateEquipment(&dtos.CreateEquipmentDTO{
		Name:      "Basketball",
		Category:  "Sports Equipment",
		Condition: "Excellent",
		Quantity:  12,
	})
	require.NoError(t, err)
	assert.NotZero(t, equipment.Id)
	assert.Equal(t, 12, equipment.Quantity)
}

func TestEquipmentService_AdjustQuantity_FloorsAtZero(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)
	equipment := createTestEquipment(t, db, "Microscope", 5)

	// The first decrement that fits succeeds, the second would go negative.
	require.NoError(t, service.AdjustQuantity(nil, equipment.Id, -3))
	err := service.AdjustQuantity(nil, equipment.Id, -3)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientInventory)
	assert.Equal(t, 2, equipmentQuantity(t, db, equipment.Id))

	require.NoError(t, service.AdjustQuantity(nil, equipment.Id, 3))
	assert.Equal(t, 5, equipmentQuantity(t, db, equipment.Id))
}

func TestEquipmentService_AdjustQuantity_NotFound(t *testing.T) {
	service := NewEquipmentService(setupTestDB(t))

	err := service.AdjustQuantity(nil, 999, -1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentService_QueryEquipment_Filters(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)

	createTestEquipment(t, db, "HD Projector", 3)
	createTestEquipment(t, db, "Lab Bench", 2)
	chairs := createTestEquipment(t, db, "Folding Chair", 20)
	require.NoError(t, db.Model(chairs).Updates(map[string]interface{}{"category": "Furniture", "condition": "Fair"}).Error)

	// Case-insensitive name substring
	items, pagination, err := service.QueryEquipment("projector", "", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "HD Projector", items[0].Name)
	assert.Equal(t, int64(1), pagination.TotalCount)

	// Exact category match, case-insensitive
	items, _, err = service.QueryEquipment("", "furniture", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Folding Chair", items[0].Name)

	// Exact condition match
	items, _, err = service.QueryEquipment("", "", "Fair", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// No match short-circuits to an empty page
	items, pagination, err = service.QueryEquipment("telescope", "", "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, int64(0), pagination.TotalCount)
	assert.False(t, pagination.HasNextPage)
}

func TestEquipmentService_QueryEquipment_Pagination(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)

	for i := 0; i < 25; i++ {
		createTestEquipment(t, db, fmt.Sprintf("Tablet %02d", i), 1)
	}

	items, pagination, err := service.QueryEquipment("", "", "", 2, 10)
	require.NoError(t, err)
	assert.Len(t, items, 10)
	assert.Equal(t, 2, pagination.CurrentPage)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, int64(25), pagination.TotalCount)
	assert.True(t, pagination.HasNextPage)
	assert.True(t, pagination.HasPrevPage)

	// Page beyond the end is empty, not an error
	items, pagination, err = service.QueryEquipment("", "", "", 4, 10)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.False(t, pagination.HasNextPage)
}

func TestEquipmentService_QueryEquipment_SortsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)

	createTestEquipment(t, db, "First", 1)
	createTestEquipment(t, db, "Second", 1)
	createTestEquipment(t, db, "Third", 1)

	items, _, err := service.QueryEquipment("", "", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Third", items[0].Name)
	assert.Equal(t, "First", items[2].Name)
}

func TestEquipmentService_UpdateEquipment(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)
	equipment := createTestEquipment(t, db, "Camera", 4)

	quantity := 7
	updated, err := service.UpdateEquipment(equipment.Id, &dtos.UpdateEquipmentDTO{Condition: "Fair", Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, "Fair", updated.Condition)
	assert.Equal(t, 7, equipmentQuantity(t, db, equipment.Id))

	_, err = service.UpdateEquipment(equipment.Id, &dtos.UpdateEquipmentDTO{Category: "Vehicles"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = service.UpdateEquipment(999, &dtos.UpdateEquipmentDTO{Name: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEquipmentService_DeleteEquipment(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)
	equipment := createTestEquipment(t, db, "Tripod", 2)

	require.NoError(t, service.DeleteEquipment(equipment.Id))
	assert.ErrorIs(t, service.DeleteEquipment(equipment.Id), apperrors.ErrNotFound)
}

func TestEquipmentService_ExportInventoryXLSX(t *testing.T) {
	db := setupTestDB(t)
	service := NewEquipmentService(db)
	createTestEquipment(t, db, "Oscilloscope", 3)
	createTestEquipment(t, db, "Whiteboard", 6)

	report, err := service.ExportInventoryXLSX()
	require.NoError(t, err)
	require.NotEmpty(t, report)

	f, err := excelize.OpenReader(bytes.NewReader(report))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Oscilloscope", rows[1][1])
}

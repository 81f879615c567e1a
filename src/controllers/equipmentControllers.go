package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type EquipmentController struct {
	service    *services.EquipmentService
	autoReturn *services.AutoReturnService
}

func NewEquipmentController(service *services.EquipmentService, autoReturn *services.AutoReturnService) *EquipmentController {
	return &EquipmentController{service: service, autoReturn: autoReturn}
}

// CreateEquipment handles POST requests to add a new equipment item
func (c *EquipmentController) CreateEquipment(ctx *gin.Context) {
	var dto dtos.CreateEquipmentDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error(), "data": nil})
		return
	}

	equipment, err := c.service.CreateEquipment(&dto)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusCreated, "Equipment created successfully", equipment)
}

// GetEquipment handles GET requests to list equipment with filters and pagination.
// Expired reservations are reconciled first so quantities are never stale.
func (c *EquipmentController) GetEquipment(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	page, limit := dtos.ParsePageParams(ctx.Query("page"), ctx.Query("limit"))
	equipment, pagination, err := c.service.QueryEquipment(
		ctx.Query("search"),
		ctx.Query("category"),
		ctx.Query("condition"),
		page, limit,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondPage(ctx, "Equipment items fetched successfully", equipment, pagination)
}

// UpdateEquipment handles PUT requests to update an existing equipment item
func (c *EquipmentController) UpdateEquipment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid equipment ID", "data": nil})
		return
	}

	var dto dtos.UpdateEquipmentDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error(), "data": nil})
		return
	}

	equipment, err := c.service.UpdateEquipment(id, &dto)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Equipment updated successfully", equipment)
}

// DeleteEquipment handles DELETE requests to remove an equipment item
func (c *EquipmentController) DeleteEquipment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid equipment ID", "data": nil})
		return
	}

	if err := c.service.DeleteEquipment(id); err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Equipment deleted successfully", nil)
}

// ExportInventory handles GET requests to download the inventory as an XLSX report
func (c *EquipmentController) ExportInventory(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	report, err := c.service.ExportInventoryXLSX()
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", report)
}

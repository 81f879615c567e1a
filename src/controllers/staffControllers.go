package controllers

import (
	"net/http"

	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type StaffController struct {
	service *services.UserService
}

func NewStaffController(service *services.UserService) *StaffController {
	return &StaffController{service: service}
}

// CreateStaff handles POST requests from admins to create staff or student accounts
func (c *StaffController) CreateStaff(ctx *gin.Context) {
	var dto dtos.CreateStaffDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error(), "data": nil})
		return
	}

	user, err := c.service.CreateUser(&dto)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusCreated, user.Role+" registered successfully", nil)
}

// GetStaffList handles GET requests for the paginated staff listing
func (c *StaffController) GetStaffList(ctx *gin.Context) {
	page, limit := dtos.ParsePageParams(ctx.Query("page"), ctx.Query("limit"))
	staff, pagination, err := c.service.ListStaff(
		ctx.Query("search"),
		ctx.Query("class"),
		page, limit,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondPage(ctx, "All staff data fetched successfully", staff, pagination)
}

package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	service    *services.ReservationService
	autoReturn *services.AutoReturnService
}

func NewReservationController(service *services.ReservationService, autoReturn *services.AutoReturnService) *ReservationController {
	return &ReservationController{service: service, autoReturn: autoReturn}
}

// parseDate accepts ISO 8601 dates with or without a time component.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// RequestEquipment handles POST requests from students to reserve equipment
func (c *ReservationController) RequestEquipment(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	equipmentId, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid equipment ID", "data": nil})
		return
	}

	var dto dtos.RequestReservationDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error(), "data": nil})
		return
	}

	if dto.FromDate == "" || dto.ToDate == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Both fromDate and toDate are required", "data": nil})
		return
	}
	fromDate, err := parseDate(dto.FromDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid date format. Please use ISO 8601 format (YYYY-MM-DD or YYYY-MM-DDTHH:mm:ss)", "data": nil})
		return
	}
	toDate, err := parseDate(dto.ToDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid date format. Please use ISO 8601 format (YYYY-MM-DD or YYYY-MM-DDTHH:mm:ss)", "data": nil})
		return
	}

	userId := ctx.GetInt("userId")
	reservation, err := c.service.RequestEquipment(userId, equipmentId, dto.Quantity, fromDate, toDate)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Equipment requested successfully", reservation)
}

// AcceptEquipment handles POST requests from staff to approve a pending reservation
func (c *ReservationController) AcceptEquipment(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid reservation ID", "data": nil})
		return
	}

	reservation, err := c.service.AcceptReservation(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Equipment accepted successfully", reservation)
}

// RejectEquipment handles POST requests from staff to reject a pending reservation
func (c *ReservationController) RejectEquipment(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid reservation ID", "data": nil})
		return
	}

	reservation, err := c.service.RejectReservation(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Equipment request rejected", reservation)
}

// ReturnEquipment handles POST requests to return borrowed equipment
func (c *ReservationController) ReturnEquipment(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("reservationId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid reservation ID", "data": nil})
		return
	}

	reservation, err := c.service.ReturnEquipment(id, ctx.GetInt("userId"), ctx.GetString("userRole"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Equipment returned successfully", reservation)
}

// GetMyReservations handles GET requests for the caller's own reservations
func (c *ReservationController) GetMyReservations(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	page, limit := dtos.ParsePageParams(ctx.Query("page"), ctx.Query("limit"))
	reservations, pagination, err := c.service.MyReservations(
		ctx.GetInt("userId"),
		ctx.Query("search"),
		ctx.Query("status"),
		page, limit,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondPage(ctx, "Reservations fetched successfully", reservations, pagination)
}

// GetAllReservations handles GET requests for the staff/admin reservation overview
func (c *ReservationController) GetAllReservations(ctx *gin.Context) {
	c.autoReturn.ProcessExpiredReservations(time.Now())

	page, limit := dtos.ParsePageParams(ctx.Query("page"), ctx.Query("limit"))
	reservations, pagination, err := c.service.AllReservations(
		ctx.GetInt("userId"),
		ctx.GetString("userRole"),
		ctx.Query("search"),
		ctx.Query("category"),
		ctx.Query("status"),
		page, limit,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondPage(ctx, "All reservations fetched successfully", reservations, pagination)
}

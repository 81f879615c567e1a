package routes

import (
	"github.com/EquipHub/EquipHub-Backend/src/controllers"
	"github.com/EquipHub/EquipHub-Backend/src/middleware"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupEquipRoutes(router *gin.Engine, equipmentService *services.EquipmentService, reservationService *services.ReservationService, autoReturnService *services.AutoReturnService) {

	equipmentController := controllers.NewEquipmentController(equipmentService, autoReturnService)
	reservationController := controllers.NewReservationController(reservationService, autoReturnService)

	// Protected routes
	equip := router.Group("/api/equip")
	equip.Use(middleware.AuthMiddleware())
	{
		equip.POST("/create", middleware.RequireRole(models.RoleAdmin), equipmentController.CreateEquipment)
		equip.GET("/get", equipmentController.GetEquipment)
		equip.PUT("/update/:id", middleware.RequireRole(models.RoleAdmin), equipmentController.UpdateEquipment)
		equip.DELETE("/delete/:id", middleware.RequireRole(models.RoleAdmin), equipmentController.DeleteEquipment)
		equip.GET("/export", middleware.RequireRole(models.RoleAdmin), equipmentController.ExportInventory)

		equip.POST("/request/:id", middleware.RequireRole(models.RoleStudent), reservationController.RequestEquipment)
		equip.POST("/accept/:id", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), reservationController.AcceptEquipment)
		equip.POST("/reject/:id", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), reservationController.RejectEquipment)
		equip.POST("/return/:reservationId", middleware.RequireRole(models.RoleStudent, models.RoleStaff, models.RoleAdmin), reservationController.ReturnEquipment)

		equip.GET("/reservations/my", middleware.RequireRole(models.RoleStudent, models.RoleStaff), reservationController.GetMyReservations)
		equip.GET("/reservations/all", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), reservationController.GetAllReservations)
	}
}

package routes

import (
	"github.com/EquipHub/EquipHub-Backend/src/controllers"
	"github.com/EquipHub/EquipHub-Backend/src/middleware"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupStaffRoutes(router *gin.Engine, service *services.UserService) {
	staffController := controllers.NewStaffController(service)

	// Admin-only routes
	staff := router.Group("/api/staff")
	staff.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		staff.POST("/create", staffController.CreateStaff)
		staff.GET("/list", staffController.GetStaffList)
	}
}

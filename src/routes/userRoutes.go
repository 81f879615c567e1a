package routes

import (
	"github.com/EquipHub/EquipHub-Backend/src/controllers"
	"github.com/EquipHub/EquipHub-Backend/src/middleware"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	userController := controllers.NewUserController(service)

	// Public routes
	router.POST("/api/auth/register", userController.Register)
	router.POST("/api/auth/login", userController.Login)

	// Protected routes
	auth := router.Group("/api/auth")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/me", userController.Me)
		auth.GET("/students", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), userController.GetStudents)
		auth.GET("/classes", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), userController.GetClasses)
		auth.GET("/dashboard", userController.Dashboard)
	}
}

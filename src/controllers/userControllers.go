package controllers

import (
	"net/http"

	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Register handles POST requests for student self-registration
func (c *UserController) Register(ctx *gin.Context) {
	var dto dtos.RegisterDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error(), "data": nil})
		return
	}

	if _, err := c.service.Register(&dto); err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusCreated, "User registered successfully", nil)
}

// Login handles POST requests to authenticate and issue a JWT token
func (c *UserController) Login(ctx *gin.Context) {
	var dto dtos.LoginDTO
	if err := ctx.ShouldBindJSON(&dto); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error(), "data": nil})
		return
	}

	token, err := c.service.AuthenticateUser(dto.Email, dto.Password)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid credentials", "data": nil})
		return
	}
	respondSuccess(ctx, http.StatusOK, "User logged in successfully", gin.H{"token": token})
}

// Me handles GET requests for the authenticated user's own profile
func (c *UserController) Me(ctx *gin.Context) {
	user, err := c.service.GetUserByID(ctx.GetInt("userId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "User data fetched successfully", gin.H{
		"name":   user.Name,
		"email":  user.Email,
		"role":   user.Role,
		"sclass": user.Sclass,
	})
}

// GetStudents handles GET requests for the student listing
func (c *UserController) GetStudents(ctx *gin.Context) {
	page, limit := dtos.ParsePageParams(ctx.Query("page"), ctx.Query("limit"))
	students, pagination, err := c.service.ListStudents(
		ctx.GetInt("userId"),
		ctx.GetString("userRole"),
		ctx.Query("search"),
		page, limit,
	)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondPage(ctx, "Students data fetched successfully", students, pagination)
}

// GetClasses handles GET requests for the class listing
func (c *UserController) GetClasses(ctx *gin.Context) {
	classes, err := c.service.ListClasses(ctx.GetInt("userId"), ctx.GetString("userRole"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Classes fetched successfully", classes)
}

// Dashboard handles GET requests for the dashboard counters
func (c *UserController) Dashboard(ctx *gin.Context) {
	students, staff, equipment, err := c.service.DashboardCounts()
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondSuccess(ctx, http.StatusOK, "Dashboard data fetched successfully", gin.H{
		"students":  students,
		"staff":     staff,
		"equipment": equipment,
	})
}

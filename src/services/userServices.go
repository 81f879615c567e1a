package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EquipHub/EquipHub-Backend/src/apperrors"
	"github.com/EquipHub/EquipHub-Backend/src/dtos"
	"github.com/EquipHub/EquipHub-Backend/src/middleware"
	"github.com/EquipHub/EquipHub-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a STUDENT account. Email is unique case-insensitively.
func (s *UserService) Register(dto *dtos.RegisterDTO) (*models.UserModel, error) {
	if dto.Name == "" || dto.Email == "" || dto.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	var existing models.UserModel
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(dto.Email)).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Name:     dto.Name,
		Email:    dto.Email,
		Password: string(hashedPassword),
		Role:     models.RoleStudent,
		Sclass:   dto.Class,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a STAFF or STUDENT account on behalf of an admin.
// Both roles require a class assignment.
func (s *UserService) CreateUser(dto *dtos.CreateStaffDTO) (*models.UserModel, error) {
	if dto.Name == "" || dto.Email == "" || dto.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", apperrors.ErrValidation)
	}

	role := dto.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleStaff && role != models.RoleStudent {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, dto.Role)
	}
	if dto.Sclass == "" {
		return nil, fmt.Errorf("%w: class field is required for %s role", apperrors.ErrValidation, role)
	}

	var existing models.UserModel
	err := s.db.Where("LOWER(email) = ?", strings.ToLower(dto.Email)).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: email already exists", apperrors.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Name:     dto.Name,
		Email:    dto.Email,
		Password: string(hashedPassword),
		Role:     role,
		Sclass:   dto.Sclass,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(email, password string) (string, error) {
	var user models.UserModel
	result := s.db.Where("LOWER(email) = ?", strings.ToLower(email)).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", errors.New("invalid email or password")
		}
		return "", result.Error
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid email or password")
	}

	claims := jwt.MapClaims{
		"id":   user.Id,
		"role": user.Role,
		"exp":  time.Now().Add(7 * 24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserByID retrieves a User record by its ID
func (s *UserService) GetUserByID(id int) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &user, nil
}

// ListStudents retrieves a page of students. Admins see every student; staff
// only see students in their own class. Supports an email substring search.
func (s *UserService) ListStudents(actorId int, actorRole, search string, page, limit int) ([]models.UserModel, dtos.Pagination, error) {
	query := s.db.Model(&models.UserModel{}).Where("role = ?", models.RoleStudent)

	if actorRole == models.RoleStaff {
		actor, err := s.GetUserByID(actorId)
		if err != nil {
			return nil, dtos.Pagination{}, err
		}
		if actor.Sclass != "" {
			query = query.Where("sclass = ?", actor.Sclass)
		}
	}

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, dtos.Pagination{}, err
	}

	var students []models.UserModel
	err := query.
		Order("sclass, name").
		Offset(dtos.Offset(page, limit)).
		Limit(limit).
		Find(&students).Error
	if err != nil {
		return nil, dtos.Pagination{}, err
	}

	return students, dtos.NewPagination(totalCount, page, limit), nil
}

// ListStaff retrieves a page of staff accounts with optional email search and
// exact (case-insensitive) class filter, newest first.
func (s *UserService) ListStaff(search, classFilter string, page, limit int) ([]models.UserModel, dtos.Pagination, error) {
	query := s.db.Model(&models.UserModel{}).Where("role = ?", models.RoleStaff)

	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if classFilter = strings.TrimSpace(classFilter); classFilter != "" {
		query = query.Where("LOWER(sclass) = ?", strings.ToLower(classFilter))
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, dtos.Pagination{}, err
	}

	var staff []models.UserModel
	err := query.
		Order("created_at DESC, id DESC").
		Offset(dtos.Offset(page, limit)).
		Limit(limit).
		Find(&staff).Error
	if err != nil {
		return nil, dtos.Pagination{}, err
	}

	return staff, dtos.NewPagination(totalCount, page, limit), nil
}

// ListClasses returns the classes visible to the actor: admins get every
// distinct student class, staff get their own class only.
func (s *UserService) ListClasses(actorId int, actorRole string) ([]string, error) {
	if actorRole == models.RoleAdmin {
		var classes []string
		err := s.db.Model(&models.UserModel{}).
			Where("role = ? AND sclass <> ''", models.RoleStudent).
			Distinct("sclass").
			Order("sclass").
			Pluck("sclass", &classes).Error
		if err != nil {
			return nil, err
		}
		return classes, nil
	}

	actor, err := s.GetUserByID(actorId)
	if err != nil {
		return nil, err
	}
	if actor.Sclass == "" {
		return []string{}, nil
	}
	return []string{actor.Sclass}, nil
}

// DashboardCounts returns the student, staff and equipment totals for the dashboard.
func (s *UserService) DashboardCounts() (students, staff, equipment int64, err error) {
	if err = s.db.Model(&models.UserModel{}).Where("role = ?", models.RoleStudent).Count(&students).Error; err != nil {
		return
	}
	if err = s.db.Model(&models.UserModel{}).Where("role = ?", models.RoleStaff).Count(&staff).Error; err != nil {
		return
	}
	err = s.db.Model(&models.EquipmentModel{}).Count(&equipment).Error
	return
}

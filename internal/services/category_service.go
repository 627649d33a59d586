// internal/services/category_service.go
package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orbitcart/orbitcart-backend/internal/apperrors"
	"github.com/orbitcart/orbitcart-backend/internal/models"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) Create(req *CreateCategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var count int64
	s.db.Model(&models.Category{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		return nil, apperrors.Conflict("Category already exists")
	}

	category := &models.Category{
		Name:      req.Name,
		IsEnabled: true,
	}
	if err := s.db.Create(category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("created_at asc").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

// Toggle flips the category between enabled and disabled.
func (s *CategoryService) Toggle(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Category not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&category).Update("is_enabled", !category.IsEnabled).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	category.IsEnabled = !category.IsEnabled
	return &category, nil
}

// internal/services/product_service.go
package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orbitcart/orbitcart-backend/internal/apperrors"
	"github.com/orbitcart/orbitcart-backend/internal/database"
	"github.com/orbitcart/orbitcart-backend/internal/models"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

const curatedListSize = 10

type ProductService struct {
	db      *gorm.DB
	storage *StorageService
}

// Numeric fields arrive as strings from the multipart storefront forms and
// are parsed server-side.
type CreateProductRequest struct {
	Name         string   `json:"name" validate:"required,min=2,max=255"`
	Price        string   `json:"price" validate:"required"`
	Discount     string   `json:"discount,omitempty"`
	TotalProduct string   `json:"totalProduct" validate:"required"`
	Size         string   `json:"size" validate:"required"`
	Type         string   `json:"type" validate:"required"`
	CategoryID   string   `json:"categoryId" validate:"required,uuid"`
	Rating       string   `json:"rating,omitempty"`
	Description  string   `json:"description,omitempty"`
	Discussion   string   `json:"discussion,omitempty"`
	Details      string   `json:"details,omitempty"`
	Images       []string `json:"images" validate:"required,min=1"`
}

type UpdateProductRequest struct {
	ID           string     `json:"id" validate:"required,uuid"`
	Name         string     `json:"name" validate:"required,min=2,max=255"`
	Price        string     `json:"price" validate:"required"`
	Discount     string     `json:"discount,omitempty"`
	TotalProduct string     `json:"totalProduct" validate:"required"`
	Size         []string   `json:"size" validate:"required,min=1"`
	OldImg       []PhotoRef `json:"oldImg"`
	Images       []string   `json:"images"`
}

type PhotoRef struct {
	ID string `json:"id" validate:"required,uuid"`
}

type ProductFilters struct {
	Type       string
	CategoryID string
}

var productSearchFields = []string{"name", "type", "description", "details"}

func NewProductService(db *gorm.DB, storage *StorageService) *ProductService {
	return &ProductService{
		db:      db,
		storage: storage,
	}
}

// FinalPrice applies the percentage discount and rounds to two decimals. The
// persisted price is always the discounted one.
func FinalPrice(price, discount float64) float64 {
	return round2(price - price*discount/100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *ProductService) Create(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return nil, apperrors.Validation("price must be numeric")
	}

	discount := 0.0
	if req.Discount != "" {
		if discount, err = strconv.ParseFloat(req.Discount, 64); err != nil {
			return nil, apperrors.Validation("discount must be numeric")
		}
	}

	totalProduct, err := strconv.Atoi(req.TotalProduct)
	if err != nil {
		return nil, apperrors.Validation("totalProduct must be an integer")
	}

	rating := 0
	if req.Rating != "" {
		if rating, err = strconv.Atoi(req.Rating); err != nil {
			return nil, apperrors.Validation("rating must be an integer")
		}
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, apperrors.Validation("categoryId must be a valid UUID")
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		return nil, apperrors.Validation("category does not exist")
	}
	if !category.IsEnabled {
		return nil, apperrors.Validation("category is disabled")
	}

	photos := make([]models.Photo, 0, len(req.Images))
	for _, imgURL := range req.Images {
		photos = append(photos, models.Photo{Img: imgURL})
	}

	product := &models.Product{
		Name:         req.Name,
		Price:        FinalPrice(price, discount),
		Discount:     discount,
		TotalProduct: totalProduct,
		Size:         pq.StringArray(splitSizes(req.Size)),
		Type:         req.Type,
		CategoryID:   categoryID,
		Rating:       rating,
		Description:  req.Description,
		Discussion:   req.Discussion,
		Details:      req.Details,
		Photos:       photos,
	}

	// gorm inserts the product and its photos in one transaction.
	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func splitSizes(raw string) []string {
	parts := strings.Split(raw, ",")
	sizes := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	return sizes
}

func (s *ProductService) List(searchTerm string, filters ProductFilters, opts utils.PaginationOptions) (*utils.PagedResult, error) {
	p := utils.Paginate(opts)

	query := s.db.Model(&models.Product{}).Where("is_delete = ?", false)
	query = applySearch(query, searchTerm, productSearchFields)

	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.CategoryID != "" {
		query = query.Where("category_id = ?", filters.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "name", "price", "discount", "sold", "rating"}
	query = utils.ApplySort(query, p, allowedSortFields)
	query = utils.ApplyPagination(query, p)

	var products []models.Product
	err := query.Preload("Category").Preload("Photos").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	result := utils.NewPagedResult(products, total, p)
	return &result, nil
}

// applySearch adds a case-insensitive OR substring match over the whitelisted
// fields.
func applySearch(query *gorm.DB, searchTerm string, fields []string) *gorm.DB {
	if searchTerm == "" {
		return query
	}

	pattern := "%" + strings.ToLower(searchTerm) + "%"
	clauses := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, field := range fields {
		clauses = append(clauses, "LOWER("+field+") LIKE ?")
		args = append(args, pattern)
	}

	return query.Where(strings.Join(clauses, " OR "), args...)
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("Category").Preload("Photos").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

// Update replaces the product's fields, removes photos absent from oldImg and
// appends the new image URLs. Photo deletes and field updates commit together.
func (s *ProductService) Update(req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, apperrors.Validation("id must be a valid UUID")
	}

	price, err := strconv.ParseFloat(req.Price, 64)
	if err != nil {
		return nil, apperrors.Validation("price must be numeric")
	}

	discount := 0.0
	if req.Discount != "" {
		if discount, err = strconv.ParseFloat(req.Discount, 64); err != nil {
			return nil, apperrors.Validation("discount must be numeric")
		}
	}

	totalProduct, err := strconv.Atoi(req.TotalProduct)
	if err != nil {
		return nil, apperrors.Validation("totalProduct must be an integer")
	}

	var existing models.Product
	err = s.db.Preload("Photos").First(&existing, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	keep := make(map[string]bool, len(req.OldImg))
	for _, ref := range req.OldImg {
		keep[ref.ID] = true
	}

	var photosToDelete []models.Photo
	for _, photo := range existing.Photos {
		if !keep[photo.ID.String()] {
			photosToDelete = append(photosToDelete, photo)
		}
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		for _, photo := range photosToDelete {
			if err := tx.Delete(&models.Photo{}, "id = ?", photo.ID).Error; err != nil {
				return fmt.Errorf("failed to delete photo: %w", err)
			}
		}

		updates := map[string]interface{}{
			"name":          req.Name,
			"price":         FinalPrice(price, discount),
			"discount":      discount,
			"total_product": totalProduct,
			"size":          pq.StringArray(req.Size),
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		for _, imgURL := range req.Images {
			photo := models.Photo{ProductID: id, Img: imgURL}
			if err := tx.Create(&photo).Error; err != nil {
				return fmt.Errorf("failed to create photo: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Removed photos are purged from object storage best effort; the rows are
	// already gone.
	for _, photo := range photosToDelete {
		if err := s.storage.DeleteByURL(photo.Img); err != nil {
			logrus.WithError(err).WithField("img", photo.Img).Warn("Failed to delete stored photo")
		}
	}

	var updated models.Product
	if err := s.db.Preload("Photos").First(&updated, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}

	return &updated, nil
}

func (s *ProductService) SoftDelete(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&product).Update("is_delete", true).Error; err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	product.IsDelete = true
	return &product, nil
}

func (s *ProductService) TopSelling() ([]models.Product, error) {
	return s.curatedList("sold DESC")
}

func (s *ProductService) Newest() ([]models.Product, error) {
	return s.curatedList("created_at DESC")
}

func (s *ProductService) MostDiscounted() ([]models.Product, error) {
	return s.curatedList("discount DESC")
}

func (s *ProductService) curatedList(order string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("is_delete = ?", false).
		Order(order).
		Limit(curatedListSize).
		Preload("Photos").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, nil
}

// CartFilteringData returns every non-deleted product with category and
// photos; the storefront uses it to validate and render carts.
func (s *ProductService) CartFilteringData() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Where("is_delete = ?", false).
		Preload("Category").
		Preload("Photos").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, nil
}

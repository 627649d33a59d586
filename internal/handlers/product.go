// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/orbitcart/orbitcart-backend/internal/services"
	"github.com/orbitcart/orbitcart-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /products
func (h *ProductHandler) List(c *gin.Context) {
	opts := utils.GetPaginationOptions(c)

	filters := services.ProductFilters{
		Type:       c.Query("type"),
		CategoryID: c.Query("categoryId"),
	}

	result, err := h.productService.List(c.Query("searchTerm"), filters, opts)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.PaginatedResponse(c, "Products fetched successfully", *result)
}

// GET /products/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.GetByID(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product fetched successfully", product)
}

// GET /products/top-selling
func (h *ProductHandler) TopSelling(c *gin.Context) {
	products, err := h.productService.TopSelling()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Top selling products fetched successfully", products)
}

// GET /products/new-arrivals
func (h *ProductHandler) Newest(c *gin.Context) {
	products, err := h.productService.Newest()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "New products fetched successfully", products)
}

// GET /products/best-discounts
func (h *ProductHandler) MostDiscounted(c *gin.Context) {
	products, err := h.productService.MostDiscounted()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Discounted products fetched successfully", products)
}

// GET /products/cart-filtering
func (h *ProductHandler) CartFilteringData(c *gin.Context) {
	products, err := h.productService.CartFilteringData()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Products fetched successfully", products)
}

// POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.Create(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Product created successfully", product)
}

// PATCH /products
func (h *ProductHandler) Update(c *gin.Context) {
	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	product, err := h.productService.Update(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product updated successfully", product)
}

// POST /products/upload-images
//
// Accepts a multipart form with one or more files under the "images" field
// and returns the stored URLs for use in create/update payloads.
func (h *ProductHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, "No images provided", nil)
		return
	}

	results := make([]*services.UploadResult, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Failed to read uploaded file", err.Error())
			return
		}

		result, err := h.storageService.UploadProductImage(file, header)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, err.Error(), nil)
			return
		}

		results = append(results, result)
	}

	utils.CreatedResponse(c, "Images uploaded successfully", results)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	product, err := h.productService.SoftDelete(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product deleted successfully", product)
}

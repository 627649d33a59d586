// internal/utils/pagination.go
package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const DefaultLimit = 10

type PaginationOptions struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

type Pagination struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	Skip      int    `json:"skip"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

type Meta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

type PagedResult struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

// Paginate normalizes raw options into offsets. SortBy/SortOrder pass
// through unchanged; callers fall back to created_at asc when either is
// missing.
func Paginate(opts PaginationOptions) Pagination {
	page := opts.Page
	if page < 1 {
		page = 1
	}

	limit := opts.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	return Pagination{
		Page:      page,
		Limit:     limit,
		Skip:      (page - 1) * limit,
		SortBy:    opts.SortBy,
		SortOrder: opts.SortOrder,
	}
}

func GetPaginationOptions(c *gin.Context) PaginationOptions {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	return PaginationOptions{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

func ApplyPagination(db *gorm.DB, p Pagination) *gorm.DB {
	return db.Offset(p.Skip).Limit(p.Limit)
}

func ApplySort(db *gorm.DB, p Pagination, allowedSortFields []string) *gorm.DB {
	if p.SortBy == "" || (p.SortOrder != "asc" && p.SortOrder != "desc") {
		return db.Order("created_at asc")
	}

	for _, field := range allowedSortFields {
		if field == p.SortBy {
			return db.Order(p.SortBy + " " + p.SortOrder)
		}
	}

	return db.Order("created_at asc")
}

func NewPagedResult(data interface{}, total int64, p Pagination) PagedResult {
	return PagedResult{
		Meta: Meta{Page: p.Page, Limit: p.Limit, Total: total},
		Data: data,
	}
}

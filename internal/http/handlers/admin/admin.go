package admin

import (
	"strings"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/http/handlers/shared"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const publicCategoriesCacheKey = "public:categories"

// ProductRequest 创建/更新商品请求
type ProductRequest struct {
	Name         string       `json:"name" binding:"required"`
	Description  string       `json:"description"`
	Category     string       `json:"category" binding:"required"`
	Brand        string       `json:"brand"`
	Image        string       `json:"image" binding:"required"`
	Price        models.Money `json:"price"`
	OldPrice     models.Money `json:"oldPrice"`
	CountInStock int          `json:"countInStock"`
	Rating       float64      `json:"rating"`
	NumReviews   int          `json:"numReviews"`
}

func (r ProductRequest) toInput() service.CreateProductInput {
	return service.CreateProductInput{
		Name:         r.Name,
		Description:  r.Description,
		Category:     r.Category,
		Brand:        r.Brand,
		Image:        r.Image,
		Price:        r.Price,
		OldPrice:     r.OldPrice,
		CountInStock: r.CountInStock,
		Rating:       r.Rating,
		NumReviews:   r.NumReviews,
	}
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	onlyInStock, err := parseBoolQuery(c, "in_stock")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
	if onlyInStock != nil {
		filter.OnlyInStock = *onlyInStock
	}

	products, total, err := h.ProductService.ListAdmin(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, shared.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_not_found")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Create(operatorID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, "error.product_create_failed")
		return
	}
	h.invalidateCatalogCache(c)
	h.recordAudit(c, "product_create", service.AuditTargetProduct, product.ID, models.JSON{"name": product.Name})
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_not_found")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, "error.product_update_failed")
		return
	}
	h.invalidateCatalogCache(c)
	h.recordAudit(c, "product_update", service.AuditTargetProduct, product.ID, models.JSON{
		"price":          product.Price.String(),
		"count_in_stock": product.CountInStock,
	})
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_not_found")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondWithMappedError(c, err, productAdminErrorRules, "error.product_delete_failed")
		return
	}
	h.invalidateCatalogCache(c)
	h.recordAudit(c, "product_delete", service.AuditTargetProduct, id, nil)
	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) invalidateCatalogCache(c *gin.Context) {
	if err := cache.Del(c.Request.Context(), publicCategoriesCacheKey); err != nil {
		requestLog(c).Warnw("admin_catalog_cache_invalidate_failed", "error", err)
	}
}

package public

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	publicCategoriesCacheKey = "public:categories"
	publicCategoriesCacheTTL = 60 * time.Second
	publicLowStockLimit      = 5
)

// 库存状态
const (
	stockStatusInStock    = "in_stock"
	stockStatusLowStock   = "low_stock"
	stockStatusOutOfStock = "out_of_stock"
)

// PublicProductView 公共商品响应结构
type PublicProductView struct {
	models.Product
	StockStatus     string `json:"stock_status"`
	IsSoldOut       bool   `json:"is_sold_out"`
	DiscountPercent int    `json:"discount_percent"`
}

func buildPublicProductView(product models.Product) PublicProductView {
	view := PublicProductView{Product: product}
	switch {
	case product.CountInStock <= 0:
		view.StockStatus = stockStatusOutOfStock
		view.IsSoldOut = true
	case product.CountInStock <= publicLowStockLimit:
		view.StockStatus = stockStatusLowStock
	default:
		view.StockStatus = stockStatusInStock
	}
	if product.OldPrice.GreaterThan(product.Price.Decimal) && product.OldPrice.IsPositive() {
		off := product.OldPrice.Sub(product.Price.Decimal).Div(product.OldPrice.Decimal).Mul(decimal.NewFromInt(100))
		view.DiscountPercent = int(off.Round(0).IntPart())
	}
	return view
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	category := strings.TrimSpace(c.Query("category"))
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(category, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	views := make([]PublicProductView, 0, len(products))
	for _, product := range products {
		views = append(views, buildPublicProductView(product))
	}
	response.SuccessWithPage(c, views, buildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, ok := parseUintParam(c, "id", "error.product_not_found")
	if !ok {
		return
	}
	product, err := h.ProductService.GetByID(productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, buildPublicProductView(*product))
}

// GetCategories 获取商品分类
func (h *Handler) GetCategories(c *gin.Context) {
	var cached []string
	if hit, err := cache.GetJSON(c.Request.Context(), publicCategoriesCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}
	categories, err := h.ProductService.ListCategories()
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	_ = cache.SetJSON(c.Request.Context(), publicCategoriesCacheKey, categories, publicCategoriesCacheTTL)
	response.Success(c, categories)
}

// PricingPreviewItem 计价预览项
type PricingPreviewItem struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"qty" binding:"required"`
}

// PricingPreviewRequest 计价预览请求
type PricingPreviewRequest struct {
	Items []PricingPreviewItem `json:"items"`
}

// PreviewPricing 按商品当前价格预览订单金额
func (h *Handler) PreviewPricing(c *gin.Context) {
	var req PricingPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	lines := make([]service.PriceLine, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			respondError(c, response.CodeBadRequest, "error.cart_item_invalid", nil)
			return
		}
		product, err := h.ProductService.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				respondError(c, response.CodeNotFound, "error.product_not_found", nil)
				return
			}
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
			return
		}
		lines = append(lines, service.PriceLine{UnitPrice: product.Price, Quantity: item.Quantity})
	}

	pricing := h.Pricing
	if pricing == nil {
		pricing = service.NewDefaultPricingCalculator()
	}
	response.Success(c, pricing.Calculate(lines))
}

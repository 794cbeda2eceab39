package models

// GuestCart 游客购物车（以游客令牌为键保存）
type GuestCart struct {
	CartItems []GuestCartItem `json:"cartItems"`
}

// GuestCartItem 游客购物车项
type GuestCartItem struct {
	ProductID    uint   `json:"productId"`
	Name         string `json:"name"`
	Image        string `json:"image"`
	Price        Money  `json:"price"`
	Quantity     int    `json:"qty"`
	CountInStock int    `json:"countInStock"`
	Category     string `json:"category"`
}

// Clone 深拷贝
func (g *GuestCart) Clone() *GuestCart {
	if g == nil {
		return &GuestCart{CartItems: []GuestCartItem{}}
	}
	items := make([]GuestCartItem, len(g.CartItems))
	copy(items, g.CartItems)
	return &GuestCart{CartItems: items}
}

// IsEmpty 是否为空
func (g *GuestCart) IsEmpty() bool {
	return g == nil || len(g.CartItems) == 0
}

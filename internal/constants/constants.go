package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 购物车存储驱动
const (
	CartStoreSQL   = "sql"
	CartStoreMongo = "mongo"
)

// 支付方式常量
const (
	PaymentMethodPayPal = "PayPal"
	PaymentMethodCard   = "CreditCard"
	PaymentMethodCOD    = "CashOnDelivery"
)

// 订单状态常量（由 is_paid / is_delivered 推导，仅用于展示与筛选）
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusDelivered      = "delivered"
)

// 异步任务类型
const (
	TaskCartMergeRetry = "cart:merge_retry"
)

// 队列名称
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 请求头
const (
	HeaderGuestToken = "X-Guest-Token"
)

// 角色常量
const (
	RoleAdmin = "admin"
)

package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request parameters",
		"error.not_found":              "Resource not found",
		"error.unauthorized":           "Unauthorized",
		"error.forbidden":              "Permission denied",
		"error.auth_header_missing":    "Authorization header is missing",
		"error.auth_header_invalid":    "Authorization header is invalid",
		"error.token_invalid":          "Invalid or expired token",
		"error.token_revoked":          "Token has been revoked, please sign in again",
		"error.user_disabled":          "Account is disabled",
		"error.user_id_invalid":        "Invalid user id",
		"error.user_id_type_invalid":   "Invalid user id type",
		"error.rate_limit_unavailable": "Service is busy, please try again later",
		"error.rate_limited":           "Too many requests, please retry in %d seconds",
		"error.login_too_many":         "Too many sign-in attempts, please retry in %d seconds",

		"error.email_invalid":         "Invalid email address",
		"error.email_exists":          "Email is already registered",
		"error.name_required":         "Name is required",
		"error.login_invalid":         "Invalid email or password",
		"error.login_failed":          "Sign-in failed",
		"error.register_failed":       "Registration failed",
		"error.user_not_found":        "User not found",
		"error.user_fetch_failed":     "Failed to load user",
		"error.user_update_failed":    "Failed to update user",
		"error.user_delete_failed":    "Failed to delete user",
		"error.user_status_invalid":   "Invalid user status",
		"error.profile_update_failed": "Failed to update profile",
		"error.cannot_modify_self":    "You cannot demote, disable or delete your own account",

		"error.password_required":       "Password is required",
		"error.password_min_length":     "Password must be at least %d characters",
		"error.password_require_upper":  "Password must contain an uppercase letter",
		"error.password_require_lower":  "Password must contain a lowercase letter",
		"error.password_require_number": "Password must contain a number",
		"error.password_weak":           "Password is too weak",

		"error.cart_item_invalid":      "Invalid cart item",
		"error.quantity_exceeds_stock": "Requested quantity exceeds available stock",
		"error.product_out_of_stock":   "Product is out of stock",
		"error.cart_not_found":         "Cart not found",
		"error.cart_fetch_failed":      "Failed to load cart",
		"error.cart_update_failed":     "Failed to update cart",
		"error.cart_merge_pending":     "Guest cart will be merged shortly",
		"error.cart_empty":             "Cart is empty",
		"error.guest_token_required":   "A valid guest token is required",

		"error.product_not_found":     "Product not found",
		"error.product_fetch_failed":  "Failed to load products",
		"error.product_invalid":       "Invalid product data",
		"error.product_create_failed": "Failed to create product",
		"error.product_update_failed": "Failed to update product",
		"error.product_delete_failed": "Failed to delete product",

		"error.shipping_address_required": "Shipping address is incomplete",
		"error.payment_method_required":   "Payment method is required",
		"error.payment_method_invalid":    "Unsupported payment method",
		"error.order_create_failed":       "Failed to place order",
		"error.order_fetch_failed":        "Failed to load orders",
		"error.order_not_found":           "Order not found",
		"error.order_status_invalid":      "Order status does not allow this operation",
		"error.order_update_failed":       "Failed to update order",

		"error.dashboard_fetch_failed": "Failed to load dashboard",
		"error.authz_fetch_failed":     "Failed to load permissions",
		"error.authz_update_failed":    "Failed to update roles",
		"error.audit_fetch_failed":     "Failed to load audit logs",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.not_found":              "资源不存在",
		"error.unauthorized":           "未登录或登录已失效",
		"error.forbidden":              "无权限访问",
		"error.auth_header_missing":    "缺少 Authorization 请求头",
		"error.auth_header_invalid":    "Authorization 请求头格式错误",
		"error.token_invalid":          "Token 无效或已过期",
		"error.token_revoked":          "Token 已失效，请重新登录",
		"error.user_disabled":          "账号已被禁用",
		"error.user_id_invalid":        "用户 ID 无效",
		"error.user_id_type_invalid":   "用户 ID 类型错误",
		"error.rate_limit_unavailable": "服务繁忙，请稍后再试",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.login_too_many":         "登录尝试过多，请 %d 秒后重试",

		"error.email_invalid":         "邮箱格式不正确",
		"error.email_exists":          "邮箱已被注册",
		"error.name_required":         "昵称不能为空",
		"error.login_invalid":         "邮箱或密码错误",
		"error.login_failed":          "登录失败",
		"error.register_failed":       "注册失败",
		"error.user_not_found":        "用户不存在",
		"error.user_fetch_failed":     "获取用户失败",
		"error.user_update_failed":    "更新用户失败",
		"error.user_delete_failed":    "删除用户失败",
		"error.user_status_invalid":   "用户状态无效",
		"error.profile_update_failed": "更新资料失败",
		"error.cannot_modify_self":    "不能降级、禁用或删除自己的账号",

		"error.password_required":       "密码不能为空",
		"error.password_min_length":     "密码长度至少 %d 位",
		"error.password_require_upper":  "密码需包含大写字母",
		"error.password_require_lower":  "密码需包含小写字母",
		"error.password_require_number": "密码需包含数字",
		"error.password_weak":           "密码强度不足",

		"error.cart_item_invalid":      "购物车商品参数无效",
		"error.quantity_exceeds_stock": "购买数量超过库存",
		"error.product_out_of_stock":   "商品已售罄",
		"error.cart_not_found":         "购物车不存在",
		"error.cart_fetch_failed":      "获取购物车失败",
		"error.cart_update_failed":     "更新购物车失败",
		"error.cart_merge_pending":     "游客购物车稍后合并",
		"error.cart_empty":             "购物车为空",
		"error.guest_token_required":   "游客令牌无效",

		"error.product_not_found":     "商品不存在",
		"error.product_fetch_failed":  "获取商品失败",
		"error.product_invalid":       "商品数据无效",
		"error.product_create_failed": "创建商品失败",
		"error.product_update_failed": "更新商品失败",
		"error.product_delete_failed": "删除商品失败",

		"error.shipping_address_required": "收货地址不完整",
		"error.payment_method_required":   "请选择支付方式",
		"error.payment_method_invalid":    "不支持的支付方式",
		"error.order_create_failed":       "下单失败",
		"error.order_fetch_failed":        "获取订单失败",
		"error.order_not_found":           "订单不存在",
		"error.order_status_invalid":      "当前订单状态不允许该操作",
		"error.order_update_failed":       "更新订单失败",

		"error.dashboard_fetch_failed": "获取仪表盘数据失败",
		"error.authz_fetch_failed":     "获取权限失败",
		"error.authz_update_failed":    "更新角色失败",
		"error.audit_fetch_failed":     "获取审计日志失败",
	},
}

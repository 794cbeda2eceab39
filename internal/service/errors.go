package service

import (
	"errors"
	"fmt"
)

// 通用错误，具体错误通过 %w 归入 ErrNotFound 或 ErrValidation
var (
	ErrNotFound     = errors.New("resource not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTransientIO 存储或网络临时故障，可重试
	ErrTransientIO = errors.New("transient io failure")
)

// 资源不存在
var (
	ErrCartNotFound    = fmt.Errorf("%w: cart", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("%w: product", ErrNotFound)
	ErrOrderNotFound   = fmt.Errorf("%w: order", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
)

// 校验错误
var (
	ErrInvalidCartItem         = fmt.Errorf("%w: invalid cart item", ErrValidation)
	ErrQuantityExceedsStock    = fmt.Errorf("%w: quantity exceeds stock", ErrValidation)
	ErrProductOutOfStock       = fmt.Errorf("%w: product out of stock", ErrValidation)
	ErrCartEmpty               = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrShippingAddressRequired = fmt.Errorf("%w: shipping address required", ErrValidation)
	ErrPaymentMethodRequired   = fmt.Errorf("%w: payment method required", ErrValidation)
	ErrPaymentMethodInvalid    = fmt.Errorf("%w: payment method invalid", ErrValidation)
	ErrOrderStatusInvalid      = fmt.Errorf("%w: order status transition invalid", ErrValidation)
	ErrInvalidProduct          = fmt.Errorf("%w: invalid product", ErrValidation)
	ErrGuestTokenRequired      = fmt.Errorf("%w: guest token required", ErrValidation)
	ErrUserStatusInvalid       = fmt.Errorf("%w: user status invalid", ErrValidation)
	ErrRolesUnavailable        = fmt.Errorf("%w: role management unavailable", ErrValidation)
)

// 认证相关错误
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidToken       = errors.New("invalid token")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
	ErrNameRequired       = errors.New("name required")
	ErrCannotDemoteSelf   = errors.New("cannot revoke own admin role")
)

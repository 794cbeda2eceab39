package public

import (
	"errors"
	"slices"

	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/i18n"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

// errorFamilyRules 兜底匹配未单独列出的不存在与校验类错误
var errorFamilyRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrValidation, code: response.CodeBadRequest, key: "error.bad_request"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range slices.Concat(rules, errorFamilyRules) {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartItemErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrQuantityExceedsStock, code: response.CodeBadRequest, key: "error.quantity_exceeds_stock"},
	{target: service.ErrProductOutOfStock, code: response.CodeBadRequest, key: "error.product_out_of_stock"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, key: "error.cart_not_found"},
}

var guestCartExtraErrorRules = []mappedHandlerError{
	{target: service.ErrGuestTokenRequired, code: response.CodeBadRequest, key: "error.guest_token_required"},
}

var cartMergeErrorRules = []mappedHandlerError{
	{target: service.ErrGuestTokenRequired, code: response.CodeBadRequest, key: "error.guest_token_required"},
	{target: service.ErrTransientIO, code: response.CodeUnavailable, key: "error.cart_merge_pending"},
}

var orderSubmitErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrShippingAddressRequired, code: response.CodeBadRequest, key: "error.shipping_address_required"},
	{target: service.ErrPaymentMethodRequired, code: response.CodeBadRequest, key: "error.payment_method_required"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
}

var orderQueryErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrNameRequired, code: response.CodeBadRequest, key: "error.name_required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrNameRequired, code: response.CodeBadRequest, key: "error.name_required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
}

func respondCartError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, cartItemErrorRules, response.CodeInternal, fallbackKey)
}

func respondGuestCartError(c *gin.Context, err error, fallbackKey string) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(guestCartExtraErrorRules, cartItemErrorRules), response.CodeInternal, fallbackKey)
}

func respondOrderSubmitError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderSubmitErrorRules, response.CodeInternal, "error.order_create_failed")
}

func respondOrderQueryError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderQueryErrorRules, response.CodeInternal, "error.order_fetch_failed")
}

// respondPasswordPolicyError 密码策略错误携带具体的提示 key 与参数
func respondPasswordPolicyError(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	locale := i18n.ResolveLocale(c)
	var perr interface {
		Key() string
		Args() []interface{}
	}
	if errors.As(err, &perr) {
		msg := i18n.Sprintf(locale, perr.Key(), perr.Args()...)
		respondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	respondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}

package admin

import (
	"errors"
	"slices"

	handlershared "github.com/furniro/storefront/internal/http/handlers/shared"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type mappedHandlerError struct {
	target error
	code   int
	key    string
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_status_invalid"},
}

var userAdminErrorRules = []mappedHandlerError{
	{target: service.ErrUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrCannotDemoteSelf, code: response.CodeBadRequest, key: "error.cannot_modify_self"},
	{target: service.ErrNameRequired, code: response.CodeBadRequest, key: "error.name_required"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeBadRequest, key: "error.email_exists"},
	{target: service.ErrUserStatusInvalid, code: response.CodeBadRequest, key: "error.user_status_invalid"},
}

var productAdminErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrInvalidProduct, code: response.CodeBadRequest, key: "error.product_invalid"},
}

var errorFamilyRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.not_found"},
	{target: service.ErrValidation, code: response.CodeBadRequest, key: "error.bad_request"},
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackKey string) {
	for _, rule := range slices.Concat(rules, errorFamilyRules) {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, response.CodeInternal, fallbackKey, err)
}

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

package admin

import (
	"net/url"
	"strings"

	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 获取当前管理员权限快照
func (h *Handler) GetAuthzMe(c *gin.Context) {
	userID, ok := getOperatorID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	policies, err := h.AuthzService.GetUserPolicies(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{
		"user_id":  userID,
		"is_admin": c.GetBool("user_is_admin"),
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role, err := url.PathUnescape(strings.TrimSpace(c.Param("role")))
	if err != nil || strings.TrimSpace(role) == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	response.Success(c, policies)
}

// GetAuthzUserRoles 获取用户角色
func (h *Handler) GetAuthzUserRoles(c *gin.Context) {
	userID, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	if _, err := h.UserAdminService.Get(userID); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, "error.user_fetch_failed")
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.authz_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id": userID,
		"roles":   roles,
	})
}

// SetAuthzUserRoles 覆盖设置用户角色
// 管理员角色由 isAdmin 标记决定，这里传入的 admin 角色会被忽略
func (h *Handler) SetAuthzUserRoles(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	roles, err := h.UserAdminService.SetRoles(operatorID, userID, req.Roles)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, "error.authz_update_failed")
		return
	}
	h.recordAudit(c, "user_roles_set", service.AuditTargetUser, userID, models.JSON{"roles": roles})
	response.Success(c, gin.H{
		"user_id": userID,
		"roles":   roles,
	})
}

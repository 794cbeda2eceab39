package admin

import (
	"strings"
	"time"

	"github.com/furniro/storefront/internal/http/handlers/shared"
	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminUserView 管理端用户响应
type AdminUserView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	IsAdmin     bool       `json:"isAdmin"`
	Status      string     `json:"status"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func buildAdminUserView(user *models.User) AdminUserView {
	return AdminUserView{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
		Status:      user.Status,
		Address:     user.Address,
		Phone:       user.Phone,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UpdateAdminUserRequest 管理员更新用户请求
type UpdateAdminUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	IsAdmin *bool   `json:"isAdmin"`
	Status  *string `json:"status"`
}

// GetAdminUsers 获取用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := parsePageQuery(c)
	isAdmin, err := parseBoolQuery(c, "is_admin")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	users, total, err := h.UserAdminService.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Status:   strings.TrimSpace(c.Query("status")),
		IsAdmin:  isAdmin,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}

	views := make([]AdminUserView, 0, len(users))
	for i := range users {
		views = append(views, buildAdminUserView(&users[i]))
	}
	response.SuccessWithPage(c, views, shared.BuildPagination(page, pageSize, total))
}

// GetAdminUser 获取用户详情
func (h *Handler) GetAdminUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	user, err := h.UserAdminService.Get(userID)
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, "error.user_fetch_failed")
		return
	}
	response.Success(c, buildAdminUserView(user))
}

// UpdateAdminUser 更新用户信息
func (h *Handler) UpdateAdminUser(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	var req UpdateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAdminService.Update(operatorID, userID, service.AdminUpdateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		IsAdmin: req.IsAdmin,
		Status:  req.Status,
	})
	if err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, "error.user_update_failed")
		return
	}
	h.recordAudit(c, "user_update", service.AuditTargetUser, user.ID, models.JSON{
		"is_admin": user.IsAdmin,
		"status":   user.Status,
	})
	response.Success(c, buildAdminUserView(user))
}

// DeleteAdminUser 删除用户
func (h *Handler) DeleteAdminUser(c *gin.Context) {
	operatorID, ok := getOperatorID(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "error.user_id_invalid")
	if !ok {
		return
	}
	if err := h.UserAdminService.Delete(operatorID, userID); err != nil {
		respondWithMappedError(c, err, userAdminErrorRules, "error.user_delete_failed")
		return
	}
	h.recordAudit(c, "user_delete", service.AuditTargetUser, userID, nil)
	response.Success(c, gin.H{"deleted": true})
}

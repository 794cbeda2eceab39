package public

import (
	"time"

	"github.com/furniro/storefront/internal/http/response"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// UserView 用户信息响应
type UserView struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	IsAdmin     bool       `json:"isAdmin"`
	Address     string     `json:"address"`
	Phone       string     `json:"phone"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func buildUserView(user *models.User) UserView {
	return UserView{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin,
		Address:     user.Address,
		Phone:       user.Phone,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRegister 用户注册，携带游客令牌时合并游客购物车
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, registerErrorRules, response.CodeInternal, "error.register_failed")
		return
	}

	response.Success(c, h.buildAuthPayload(c, user, token, expiresAt))
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin 用户登录，携带游客令牌时合并游客购物车
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}

	response.Success(c, h.buildAuthPayload(c, user, token, expiresAt))
}

// buildAuthPayload 组装登录/注册响应，并触发一次游客购物车合并
// 合并失败不影响登录结果，游客购物车保留，下次加载购物车时重试
func (h *Handler) buildAuthPayload(c *gin.Context, user *models.User, token string, expiresAt time.Time) gin.H {
	payload := gin.H{
		"user":       buildUserView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}

	guestToken := getGuestToken(c)
	if guestToken == "" || h.CartReconciler == nil {
		return payload
	}
	result, err := h.CartReconciler.HandleTransition(c.Request.Context(), service.AuthTransition{
		UserID:     user.ID,
		GuestToken: guestToken,
	})
	if err != nil {
		requestLog(c).Warnw("auth_cart_merge_failed",
			"user_id", user.ID,
			"error", err,
		)
		payload["cart_merge"] = gin.H{"status": "pending"}
		return payload
	}
	payload["cart_merge"] = gin.H{
		"status":  "merged",
		"merged":  result.Merged,
		"clamped": result.Clamped,
		"skipped": result.Skipped,
	}
	payload["cart"] = buildCartView(result.Cart, h.Pricing)
	return payload
}

// GetMe 获取当前用户信息
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, buildUserView(user))
}

// UpdateProfileRequest 更新资料请求（字段为空表示不修改）
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Address  *string `json:"address"`
	Phone    *string `json:"phone"`
}

// UpdateProfile 更新个人资料，返回新 Token
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, token, expiresAt, err := h.UserAuthService.UpdateProfile(uid, service.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.profile_update_failed")
		return
	}

	response.Success(c, gin.H{
		"user":       buildUserView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

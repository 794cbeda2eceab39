package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/furniro/storefront/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState JWT 校验所需的用户快照，缓存后避免每个请求都查用户表
type UserAuthState struct {
	UserID       uint   `json:"user_id"`
	Status       string `json:"status"`
	IsAdmin      bool   `json:"is_admin"`
	TokenVersion uint64 `json:"token_version"`
	// InvalidBefore 早于该时间（Unix 秒）签发的 Token 一律失效，0 表示不限制
	InvalidBefore int64 `json:"invalid_before"`
}

// AcceptsToken 判断指定版本与签发时间的 Token 是否仍有效（不含账号状态）
func (s *UserAuthState) AcceptsToken(version uint64, issuedAt time.Time) bool {
	if s == nil || version != s.TokenVersion {
		return false
	}
	return s.InvalidBefore == 0 || issuedAt.IsZero() || issuedAt.Unix() >= s.InvalidBefore
}

func userAuthStateKey(userID uint) string {
	return "auth:user:" + strconv.FormatUint(uint64(userID), 10)
}

// BuildUserAuthState 从用户模型构建快照
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:       user.ID,
		Status:       user.Status,
		IsAdmin:      user.IsAdmin,
		TokenVersion: user.TokenVersion,
	}
	if user.TokenInvalidBefore != nil {
		state.InvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState 读取快照，Redis 未启用时总是未命中
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	state := &UserAuthState{}
	hit, err := GetJSON(ctx, userAuthStateKey(userID), state)
	if err != nil || !hit {
		return nil, false, err
	}
	return state, true, nil
}

// SetUserAuthState 写入快照
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState 用户状态、角色或密码变化后删除快照
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/furniro/storefront/internal/cache"
	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"
)

// UserRoleSyncer 用户角色同步（由 authz.Service 实现）
type UserRoleSyncer interface {
	SetUserRoles(userID uint, roles []string) error
	GetUserRoles(userID uint) ([]string, error)
}

// AdminUpdateUserInput 管理端用户更新
type AdminUpdateUserInput struct {
	Name    *string
	Email   *string
	IsAdmin *bool
	Status  *string
}

// UserAdminService 管理端用户服务
type UserAdminService struct {
	userRepo repository.UserRepository
	roles    UserRoleSyncer
}

// NewUserAdminService 创建管理端用户服务
func NewUserAdminService(userRepo repository.UserRepository, roles UserRoleSyncer) *UserAdminService {
	return &UserAdminService{userRepo: userRepo, roles: roles}
}

// List 用户列表
func (s *UserAdminService) List(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// Get 获取用户详情
func (s *UserAdminService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update 更新用户资料、管理员标记与状态
func (s *UserAdminService) Update(operatorID, id uint, input AdminUpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		user.Name = name
	}
	if input.Email != nil {
		normalized, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if normalized != user.Email {
			exist, err := s.userRepo.GetByEmail(normalized)
			if err != nil {
				return nil, err
			}
			if exist != nil && exist.ID != user.ID {
				return nil, ErrEmailExists
			}
			user.Email = normalized
		}
	}

	roleChanged := false
	if input.IsAdmin != nil && *input.IsAdmin != user.IsAdmin {
		if !*input.IsAdmin && operatorID == user.ID {
			return nil, ErrCannotDemoteSelf
		}
		user.IsAdmin = *input.IsAdmin
		roleChanged = true
	}

	statusChanged := false
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		if status != constants.UserStatusActive && status != constants.UserStatusDisabled {
			return nil, ErrUserStatusInvalid
		}
		if status == constants.UserStatusDisabled && operatorID == user.ID {
			return nil, ErrCannotDemoteSelf
		}
		statusChanged = status != user.Status
		user.Status = status
	}

	if statusChanged && user.Status == constants.UserStatusDisabled {
		now := time.Now()
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	if roleChanged {
		if err := s.syncRoles(user); err != nil {
			return nil, err
		}
	}
	if roleChanged || statusChanged {
		_ = cache.DelUserAuthState(context.Background(), user.ID)
	}
	logger.Infow("admin_user_updated",
		"operator_id", operatorID,
		"user_id", user.ID,
		"is_admin", user.IsAdmin,
		"status", user.Status,
	)
	return user, nil
}

// Delete 删除用户，不允许删除自己
func (s *UserAdminService) Delete(operatorID, id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if user.ID == operatorID {
		return ErrCannotDemoteSelf
	}
	if err := s.userRepo.Delete(user.ID); err != nil {
		return err
	}
	if s.roles != nil {
		if err := s.roles.SetUserRoles(user.ID, nil); err != nil {
			logger.Warnw("admin_user_delete_revoke_roles_failed", "user_id", user.ID, "error", err)
		}
	}
	_ = cache.DelUserAuthState(context.Background(), user.ID)
	logger.Infow("admin_user_deleted", "operator_id", operatorID, "user_id", user.ID)
	return nil
}

// SetRoles 覆盖设置用户的附加角色（如 fulfillment），admin 角色始终跟随 is_admin 标记
func (s *UserAdminService) SetRoles(operatorID, id uint, roles []string) ([]string, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if s.roles == nil {
		return nil, ErrRolesUnavailable
	}
	next := make([]string, 0, len(roles)+1)
	seen := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		name := roleName(role)
		if name == "" || name == constants.RoleAdmin {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		next = append(next, name)
	}
	if user.IsAdmin {
		next = append(next, constants.RoleAdmin)
	}
	if err := s.roles.SetUserRoles(user.ID, next); err != nil {
		return nil, err
	}
	logger.Infow("admin_user_roles_updated",
		"operator_id", operatorID,
		"user_id", user.ID,
		"roles", next,
	)
	return next, nil
}

// syncRoles 按 is_admin 增删 admin 角色，保留其它附加角色
func (s *UserAdminService) syncRoles(user *models.User) error {
	if s.roles == nil {
		return nil
	}
	current, err := s.roles.GetUserRoles(user.ID)
	if err != nil {
		return err
	}
	roles := make([]string, 0, len(current)+1)
	for _, role := range current {
		if name := roleName(role); name != "" && name != constants.RoleAdmin {
			roles = append(roles, name)
		}
	}
	if user.IsAdmin {
		roles = append(roles, constants.RoleAdmin)
	}
	return s.roles.SetUserRoles(user.ID, roles)
}

func roleName(role string) string {
	return strings.TrimPrefix(strings.TrimSpace(role), "role:")
}

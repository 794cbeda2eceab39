package repository

import (
	"github.com/furniro/storefront/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	ListAdminIDs() ([]uint, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	Delete(userID uint) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByEmail 邮箱需调用方先规范化为小写
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	return findFirst[models.User](r.db.Where("email = ?", email))
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return findFirst[models.User](r.db, id)
}

// ListAdminIDs 管理员 ID 列表，用于启动时同步 casbin 角色
func (r *GormUserRepository) ListAdminIDs() ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.User{}).
		Where("is_admin = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List 后台用户列表，按邮箱或昵称模糊搜索
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).Scopes(keywordSearch(filter.Keyword, "email", "name"))
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.IsAdmin != nil {
		query = query.Where("is_admin = ?", *filter.IsAdmin)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	if err := query.Scopes(paginate(filter.Page, filter.PageSize)).Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete 软删除用户，同时吊销已签发的 Token
func (r *GormUserRepository) Delete(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := revokeTokens(tx, userID); err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

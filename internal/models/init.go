package models

import (
	"strings"

	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

const defaultAdminPassword = "admin123"

// InitDefaultAdmin 初始化默认管理员账号，返回管理员用户ID
func InitDefaultAdmin(email, password string) (uint, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		email = "admin@furniro.local"
	}

	var existing User
	if err := DB.Where("is_admin = ?", true).Order("id asc").First(&existing).Error; err == nil {
		return existing.ID, nil
	}

	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	admin := User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
		Status:       constants.UserStatusActive,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return 0, err
	}

	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}
	return admin.ID, nil
}

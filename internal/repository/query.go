package repository

import (
	"errors"
	"time"

	"github.com/furniro/storefront/internal/models"

	"gorm.io/gorm"
)

// findFirst 查询首条记录，不存在时返回 nil, nil
func findFirst[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var row T
	err := query.First(&row, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// revokeTokens 让用户已签发的 Token 全部失效
func revokeTokens(tx *gorm.DB, userID uint) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"token_version":        gorm.Expr("token_version + 1"),
		"token_invalid_before": time.Now(),
	}).Error
}

package repository

import (
	"strings"

	"gorm.io/gorm"
)

// likeOperator postgres 使用 ILIKE，sqlite 的 LIKE 对 ASCII 本身不区分大小写
func likeOperator(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "LIKE"
	}
	switch strings.ToLower(db.Dialector.Name()) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// keywordSearch 在多个列上做模糊匹配（OR），关键字中的通配符按字面量处理
func keywordSearch(keyword string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			return db
		}
		clause, args := buildKeywordClause(likeOperator(db), keyword, columns)
		if clause == "" {
			return db
		}
		return db.Where(clause, args...)
	}
}

func buildKeywordClause(operator, keyword string, columns []string) (string, []interface{}) {
	pattern := "%" + likeEscaper.Replace(keyword) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		column = strings.TrimSpace(column)
		if column == "" {
			continue
		}
		parts = append(parts, column+" "+operator+` ? ESCAPE '\'`)
		args = append(args, pattern)
	}
	return strings.Join(parts, " OR "), args
}

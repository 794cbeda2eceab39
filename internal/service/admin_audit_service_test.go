package service

import (
	"testing"

	"github.com/furniro/storefront/internal/models"
	"github.com/furniro/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAuditServiceRecordAndList(t *testing.T) {
	f := setupCartFixture(t)
	svc := NewAdminAuditService(repository.NewAdminAuditLogRepository(f.db))

	require.NoError(t, svc.Record(AdminAuditRecordInput{
		OperatorUserID: 1,
		Action:         "order_mark_paid",
		TargetType:     AuditTargetOrder,
		TargetID:       7,
		RequestID:      " req-1 ",
	}))
	require.NoError(t, svc.Record(AdminAuditRecordInput{
		OperatorUserID: 1,
		Action:         "user_roles_set",
		TargetType:     AuditTargetUser,
		TargetID:       3,
		Detail:         models.JSON{"roles": []string{"fulfillment"}},
	}))
	// 缺少操作人或动作的记录被忽略
	require.NoError(t, svc.Record(AdminAuditRecordInput{Action: "noop"}))
	require.NoError(t, svc.Record(AdminAuditRecordInput{OperatorUserID: 2, Action: "  "}))

	logs, total, err := svc.List(repository.AdminAuditLogListFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)
	assert.Equal(t, "user_roles_set", logs[0].Action)
	assert.Equal(t, "req-1", logs[1].RequestID)
	assert.NotNil(t, logs[0].DetailJSON["roles"])

	logs, total, err = svc.List(repository.AdminAuditLogListFilter{TargetType: AuditTargetOrder, TargetID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "order_mark_paid", logs[0].Action)
}

func TestAdminAuditServiceNilSafe(t *testing.T) {
	var svc *AdminAuditService
	assert.NoError(t, svc.Record(AdminAuditRecordInput{OperatorUserID: 1, Action: "x"}))
	logs, total, err := svc.List(repository.AdminAuditLogListFilter{})
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
}

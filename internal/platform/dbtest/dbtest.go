// Package dbtest 为仓储和服务层测试提供内存 SQLite 数据库
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xxz807/bookkeeping/internal/platform/config"
	"github.com/xxz807/bookkeeping/internal/platform/database"
)

// New 打开一个独立的内存库并建表，测试结束时自动关闭
func New(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{
		Driver:         "sqlite",
		DSN:            ":memory:",
		LogLevel:       "silent",
		ConnectRetries: 1,
	}, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, models...))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

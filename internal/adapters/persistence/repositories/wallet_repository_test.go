package repositories

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlRecorder keeps the SQL gorm would have sent
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, sql)
}

func TestWalletRolloverOrdersAssignmentsForMySQL(t *testing.T) {
	rec := &sqlRecorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "user:pass@tcp(127.0.0.1:3306)/rewardhub?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: rec})
	require.NoError(t, err)

	_, err = NewWalletRepository(db).RolloverDaily(context.Background(), time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, rec.stmts, 1)
	sql := rec.stmts[0]
	copyAt := strings.Index(sql, "income_yesterday = income_today")
	clearAt := strings.Index(sql, "income_today = 0")
	require.GreaterOrEqual(t, copyAt, 0, sql)
	require.Greater(t, clearAt, copyAt, sql)
}

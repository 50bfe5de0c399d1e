package db

import (
	"context"
	"path/filepath"
	"testing"

	"asset_circulation_engine/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestRepo runs the real migration against a throwaway sqlite file. The
// pool is capped at one connection so concurrent unit-of-work calls
// serialize underneath exactly like row-locked transactions do on postgres.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()

	path := filepath.Join(t.TempDir(), "circulation.db")
	conn, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(10000)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(conn))
	return NewRepo(conn)
}

func seedAsset(t *testing.T, r *Repo, code string, totalStock int) *models.Asset {
	t.Helper()
	a := &models.Asset{
		ID:         uuid.NewString(),
		Code:       code,
		Name:       "Asset " + code,
		TotalStock: totalStock,
	}
	require.NoError(t, r.CreateAsset(context.Background(), a))
	return a
}

func seedAssignment(t *testing.T, r *Repo) *models.Assignment {
	t.Helper()
	asg, err := r.OpenAssignment(context.Background(), OpenAssignmentInput{
		BorrowerID:   uuid.NewString(),
		AcademicYear: "2025/2026",
		Term:         "1",
		ActorID:      uuid.NewString(),
	})
	require.NoError(t, err)
	return asg
}

// requireLedger asserts the stock/status pair that is the single source of
// truth for an asset's availability.
func requireLedger(t *testing.T, r *Repo, assetID string, currentStock int, status models.AssetStatus) {
	t.Helper()
	a, err := r.FindAssetByID(context.Background(), assetID)
	require.NoError(t, err)
	require.Equal(t, currentStock, a.CurrentStock, "current stock")
	require.Equal(t, status, a.Status, "status")
	require.GreaterOrEqual(t, a.CurrentStock, 0)
	require.LessOrEqual(t, a.CurrentStock, a.TotalStock)
}

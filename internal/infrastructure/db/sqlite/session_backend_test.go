package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(context.Background(), Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSessionBackend_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	b := NewSessionBackend(setupTestDB(t))

	require.NoError(t, b.Save(ctx, "c:jwt", "first"))
	require.NoError(t, b.Save(ctx, "c:jwt", "second"))

	v, found, err := b.Load(ctx, "c:jwt")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "second", v)

	var n int64
	require.NoError(t, b.db.Model(&sessionRecord{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSessionBackend_Missing(t *testing.T) {
	b := NewSessionBackend(setupTestDB(t))

	_, found, err := b.Load(context.Background(), "nobody:jwt")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionBackend_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	db, err := Connect(ctx, Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, NewSessionBackend(db).Save(ctx, "c:jwt", "tok"))
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	reopened, err := Connect(ctx, Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		if s, err := reopened.DB(); err == nil {
			_ = s.Close()
		}
	})

	v, found, err := NewSessionBackend(reopened).Load(ctx, "c:jwt")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok", v)
}

func TestSessionBackend_Ping(t *testing.T) {
	assert.NoError(t, NewSessionBackend(setupTestDB(t)).Ping(context.Background()))
}

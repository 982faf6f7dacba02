package implementation

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"trade-advisor-be/internal/entity"
	"trade-advisor-be/internal/model"
	"trade-advisor-be/internal/repository/specification"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.LookupCacheEntry{},
		&model.ModerationLog{},
		&model.UserDocument{},
		&model.BusinessProfile{},
	))
	return db
}

func TestLookupCacheRepository_FindFresh(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewLookupCacheRepository(db, db)

	now := time.Now().UTC().Truncate(time.Second)
	lat, lng := 30.2672, -97.7431

	entries := []*entity.LookupCacheEntry{
		{Provider: "places", CacheKey: "k1", Payload: "stale", CreatedAt: now.Add(-25 * time.Hour)},
		{Provider: "places", CacheKey: "k1", Payload: "older", CreatedAt: now.Add(-2 * time.Hour), Latitude: &lat, Longitude: &lng, RadiusMeters: 16093},
		{Provider: "places", CacheKey: "k1", Payload: "newest", CreatedAt: now.Add(-1 * time.Hour)},
		{Provider: "websearch", CacheKey: "k1", Payload: "other provider", CreatedAt: now},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
		assert.NotEqual(t, uuid.Nil, e.Id)
	}

	t.Run("newest valid row wins", func(t *testing.T) {
		got, err := repo.FindFresh(ctx, "places", "k1", now.Add(-24*time.Hour))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "newest", got.Payload)
	})

	t.Run("expired rows are invisible", func(t *testing.T) {
		got, err := repo.FindFresh(ctx, "places", "k1", now.Add(-90*time.Minute))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "newest", got.Payload)

		got, err = repo.FindFresh(ctx, "places", "k1", now.Add(-30*time.Minute))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := repo.FindFresh(ctx, "places", "unknown", now.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("rows are never deleted", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&model.LookupCacheEntry{}).Count(&count).Error)
		assert.Equal(t, int64(4), count)
	})
}

func TestModerationLogRepository_CreateAndCount(t *testing.T) {
	ctx := context.Background()
	repo := NewModerationLogRepository(newSQLiteDB(t))

	logs := []*entity.ModerationLog{
		{
			Content:           "how do I hurt myself",
			ContentType:       "message",
			Flagged:           true,
			FlaggedCategories: []string{"self-harm"},
			CategoryScores:    map[string]float64{"self-harm": 0.92},
			Action:            entity.ModerationActionBlocked,
			Reason:            "self-harm",
			CallerId:          "user-1",
		},
		{Content: "pricing question", ContentType: "message", Action: entity.ModerationActionAllowed, CallerId: "user-1"},
		{Content: "attached file", ContentType: "file_content", Action: entity.ModerationActionAllowed, CallerId: "user-2"},
	}
	for _, l := range logs {
		require.NoError(t, repo.Create(ctx, l))
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	blocked, err := repo.Count(ctx, specification.ByModerationAction{Action: entity.ModerationActionBlocked})
	require.NoError(t, err)
	assert.Equal(t, int64(1), blocked)

	files, err := repo.Count(ctx, specification.ByContentType{ContentType: "file_content"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), files)

	byCaller, err := repo.Count(ctx, specification.ByCallerID{CallerID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byCaller)
}

func TestUserDocumentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserDocumentRepository(newSQLiteDB(t))
	owner := uuid.New()

	active := &entity.UserDocument{OwnerId: owner, FileName: "pricing.pdf", MimeType: "application/pdf", Status: entity.DocumentStatusPending, IsActive: true}
	rejected := &entity.UserDocument{OwnerId: owner, FileName: "bad.txt", Status: entity.DocumentStatusRejected, IsActive: false}
	foreign := &entity.UserDocument{OwnerId: uuid.New(), FileName: "other.md", Status: entity.DocumentStatusReady, IsActive: true}
	for _, d := range []*entity.UserDocument{active, rejected, foreign} {
		require.NoError(t, repo.Create(ctx, d))
	}

	t.Run("inactive flag survives insert", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByID{ID: rejected.Id})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.IsActive)
	})

	t.Run("owned active listing", func(t *testing.T) {
		docs, err := repo.FindAll(ctx, specification.DocumentOwnedBy{OwnerID: owner}, specification.ActiveDocuments{})
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "pricing.pdf", docs[0].FileName)
	})

	t.Run("update status", func(t *testing.T) {
		active.Status = entity.DocumentStatusReady
		active.ChunkCount = 4
		require.NoError(t, repo.Update(ctx, active))

		got, err := repo.FindOne(ctx, specification.ByID{ID: active.Id}, specification.DocumentOwnedBy{OwnerID: owner})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.DocumentStatusReady, got.Status)
		assert.Equal(t, 4, got.ChunkCount)
	})

	t.Run("targeted status write skips inactive documents", func(t *testing.T) {
		updated, err := repo.UpdateStatus(ctx, rejected.Id, entity.DocumentStatusReady, 7)
		require.NoError(t, err)
		assert.False(t, updated)

		got, err := repo.FindOne(ctx, specification.ByID{ID: rejected.Id})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.DocumentStatusRejected, got.Status)
		assert.False(t, got.IsActive)

		updated, err = repo.UpdateStatus(ctx, active.Id, entity.DocumentStatusFailed, 0)
		require.NoError(t, err)
		assert.True(t, updated)

		got, err = repo.FindOne(ctx, specification.ByID{ID: active.Id}, specification.ActiveDocuments{}, specification.ForUpdate{})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.DocumentStatusFailed, got.Status)
		assert.Zero(t, got.ChunkCount)
	})

	t.Run("other owner cannot see document", func(t *testing.T) {
		got, err := repo.FindOne(ctx, specification.ByID{ID: foreign.Id}, specification.DocumentOwnedBy{OwnerID: owner})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestBusinessProfileRepository_FindByUserId(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t)
	repo := NewBusinessProfileRepository(db)

	owner := uuid.New()
	require.NoError(t, db.Create(&model.BusinessProfile{
		UserId:        owner,
		BusinessName:  "Green Edge Lawn",
		Trade:         "landscaping",
		City:          "Columbus",
		State:         "OH",
		ZipCode:       "43215",
		Region:        "midwest",
		BusinessStage: "growth",
	}).Error)
	require.NoError(t, db.Create(&model.BusinessProfile{UserId: uuid.New(), BusinessName: "Other"}).Error)

	got, err := repo.FindByUserId(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, owner, got.UserId)
	assert.Equal(t, "Green Edge Lawn", got.BusinessName)
	assert.Equal(t, "43215", got.ZipCode)
	assert.Equal(t, "growth", got.BusinessStage)

	missing, err := repo.FindByUserId(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

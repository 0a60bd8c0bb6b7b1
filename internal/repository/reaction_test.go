package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.PostImage{},
		&models.Reaction{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func seedPostWithUser(t *testing.T, db *gorm.DB) (*models.Post, *models.User) {
	t.Helper()

	user := &models.User{Username: "reader", Email: "reader@example.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)

	post := &models.Post{
		Title:     "A Post",
		Slug:      "a-post",
		Content:   "content",
		AuthorID:  user.ID,
		Published: true,
	}
	require.NoError(t, db.Create(post).Error)
	return post, user
}

func TestToggleCreatesReaction(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)

	reaction, outcome, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ToggleCreated, outcome)
	require.NotNil(t, reaction)
	assert.Equal(t, models.ReactionLike, reaction.ReactionType)

	var count int64
	db.Model(&models.Reaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestToggleSameTypeRemoves(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)

	_, _, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)

	reaction, outcome, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, outcome)
	assert.Nil(t, reaction)

	var count int64
	db.Model(&models.Reaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestToggleDifferentTypeSwitches(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)

	first, _, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)

	second, outcome, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, ToggleUpdated, outcome)
	require.NotNil(t, second)
	assert.Equal(t, models.ReactionDislike, second.ReactionType)
	// Same row, new type: no second reaction appears.
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Reaction{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestToggleFullCycle(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)
	ctx := context.Background()

	_, outcome, err := repo.Toggle(ctx, post.ID, user.ID, models.ReactionDislike)
	require.NoError(t, err)
	assert.Equal(t, ToggleCreated, outcome)

	_, outcome, err = repo.Toggle(ctx, post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ToggleUpdated, outcome)

	_, outcome, err = repo.Toggle(ctx, post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, outcome)

	_, outcome, err = repo.Toggle(ctx, post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, ToggleCreated, outcome)
}

func TestReactionsIndependentAcrossUsers(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	other := &models.User{Username: "other", Email: "other@example.com", Password: "pw"}
	require.NoError(t, db.Create(other).Error)

	repo := NewReactionRepository(db)
	ctx := context.Background()

	_, _, err := repo.Toggle(ctx, post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	_, _, err = repo.Toggle(ctx, post.ID, other.ID, models.ReactionDislike)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Reaction{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	mine, err := repo.GetByPostAndUser(ctx, post.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, models.ReactionLike, mine.ReactionType)
}

func TestGetByPostAndUserMissing(t *testing.T) {
	t.Parallel()

	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)

	reaction, err := repo.GetByPostAndUser(context.Background(), post.ID, user.ID)
	require.NoError(t, err)
	assert.Nil(t, reaction)
}

// TestToggleLostCreateRace simulates a concurrent create for the same
// (post, user) pair landing between Toggle's read and its insert: a
// create callback slips the competing row in first, so the insert hits
// the unique index. The toggle must settle against the winner's row
// instead of failing.
func TestToggleLostCreateRace(t *testing.T) {
	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)

	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("inject_competing_reaction", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Reaction); !ok || raced {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO reactions (post_id, user_id, reaction_type, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
			post.ID, user.ID, models.ReactionDislike,
		)
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Callback().Create().Remove("inject_competing_reaction") })

	reaction, outcome, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.True(t, raced)
	assert.Equal(t, ToggleUpdated, outcome)
	require.NotNil(t, reaction)
	assert.Equal(t, models.ReactionLike, reaction.ReactionType)

	var count int64
	db.Model(&models.Reaction{}).Where("post_id = ? AND user_id = ?", post.ID, user.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// TestToggleLostRaceSameType covers the other settle outcome: the
// concurrent winner placed the same type, so the loser's toggle reads
// as a repeat and removes the reaction.
func TestToggleLostRaceSameType(t *testing.T) {
	db := setupRepoTestDB(t)
	post, user := seedPostWithUser(t, db)
	repo := NewReactionRepository(db)

	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("inject_same_type_reaction", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Reaction); !ok || raced {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO reactions (post_id, user_id, reaction_type, created_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)",
			post.ID, user.ID, models.ReactionLike,
		)
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Callback().Create().Remove("inject_same_type_reaction") })

	reaction, outcome, err := repo.Toggle(context.Background(), post.ID, user.ID, models.ReactionLike)
	require.NoError(t, err)
	assert.True(t, raced)
	assert.Equal(t, ToggleRemoved, outcome)
	assert.Nil(t, reaction)

	var count int64
	db.Model(&models.Reaction{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequests(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	first := &models.Request{Description: "ladder", RequestorID: ann.ID, Created: base}
	second := &models.Request{Description: "tent", RequestorID: ann.ID, Created: base.Add(time.Hour)}
	other := &models.Request{Description: "kayak", RequestorID: bob.ID, Created: base.Add(2 * time.Hour)}
	for _, r := range []*models.Request{first, second, other} {
		require.NoError(t, db.CreateRequest(ctx, r))
	}

	got, err := db.GetRequest(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "ladder", got.Description)
	assert.True(t, got.Created.Equal(base))

	_, err = db.GetRequest(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	own, err := db.ListRequestsByRequestor(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID)
	assert.Equal(t, first.ID, own[1].ID)

	others, err := db.ListOtherRequests(ctx, ann.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, other.ID, others[0].ID)

	others, err = db.ListOtherRequests(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, first.ID, others[0].ID)
}

func TestComments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	owner := createUser(t, db, "owner")
	author := createUser(t, db, "author")
	item := createItem(t, db, owner.ID, "Drill", "cordless", true)
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	c1 := &models.Comment{Text: "great", ItemID: item.ID, AuthorID: author.ID, Created: base.Add(time.Minute)}
	c2 := &models.Comment{Text: "loud", ItemID: item.ID, AuthorID: author.ID, Created: base}
	require.NoError(t, db.CreateComment(ctx, c1))
	require.NoError(t, db.CreateComment(ctx, c2))

	comments, err := db.ListCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c2.ID, comments[0].ID)
	assert.Equal(t, "author", comments[0].AuthorName)
	assert.Equal(t, "great", comments[1].Text)

	err = db.CreateComment(ctx, &models.Comment{Text: "x", ItemID: 999, AuthorID: author.ID, Created: base})
	assert.ErrorIs(t, err, ErrForeignKey)
}

package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateItem(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")

	item, err := e.items.Create(ctx, owner.ID, &models.Item{Name: "Drill", Description: "cordless", Available: true})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, owner.ID, item.OwnerID)

	_, err = e.items.Create(ctx, 999, &models.Item{Name: "Drill", Description: "cordless"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = e.items.Create(ctx, owner.ID, &models.Item{Name: " ", Description: "cordless"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	missing := int64(42)
	_, err = e.items.Create(ctx, owner.ID, &models.Item{Name: "Drill", Description: "x", RequestID: &missing})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateItem(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	other := e.user(t, "other")
	item := e.item(t, owner.ID, true)

	got, err := e.items.Update(ctx, owner.ID, item.ID, models.ItemUpdate{Name: strPtr("Hammer drill")})
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", got.Name)
	assert.Equal(t, "cordless", got.Description)
	assert.True(t, got.Available)

	_, err = e.items.Update(ctx, other.ID, item.ID, models.ItemUpdate{Name: strPtr("Stolen")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = e.items.Update(ctx, owner.ID, 999, models.ItemUpdate{})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = e.items.Update(ctx, owner.ID, item.ID, models.ItemUpdate{Description: strPtr("")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestGetItemView(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	booker := e.user(t, "booker")
	item := e.item(t, owner.ID, true)

	prev := e.booking(t, item.ID, booker.ID, -2*time.Hour, -time.Hour, models.StatusApproved)
	next := e.booking(t, item.ID, booker.ID, time.Hour, 2*time.Hour, models.StatusApproved)
	_, err := e.items.AddComment(ctx, booker.ID, item.ID, "works well")
	require.NoError(t, err)

	view, err := e.items.Get(ctx, owner.ID, item.ID)
	require.NoError(t, err)
	require.NotNil(t, view.LastBooking)
	require.NotNil(t, view.NextBooking)
	assert.Equal(t, prev.ID, view.LastBooking.ID)
	assert.Equal(t, next.ID, view.NextBooking.ID)
	require.Len(t, view.Comments, 1)
	assert.Equal(t, "booker", view.Comments[0].AuthorName)

	view, err = e.items.Get(ctx, booker.ID, item.ID)
	require.NoError(t, err)
	assert.Nil(t, view.LastBooking)
	assert.Nil(t, view.NextBooking)
	assert.Len(t, view.Comments, 1)

	_, err = e.items.Get(ctx, owner.ID, 999)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestListItemsByOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	a := e.item(t, owner.ID, true)
	e.item(t, owner.ID, true)

	views, err := e.items.ListByOwner(ctx, owner.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, a.ID, views[0].ID)
	assert.NotNil(t, views[0].Comments)

	_, err = e.items.ListByOwner(ctx, 999, 0, 10)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestSearchItems(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	e.item(t, owner.ID, true)

	found, err := e.items.Search(ctx, "DRILL", 0, 10)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = e.items.Search(ctx, "   ", 0, 10)
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)
}

func TestCommentGate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := e.user(t, "owner")
	booker := e.user(t, "booker")
	item := e.item(t, owner.ID, true)

	_, err := e.items.AddComment(ctx, booker.ID, item.ID, "nice")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, "user has not rented this item", err.Error())

	e.booking(t, item.ID, booker.ID, -time.Hour, time.Hour, models.StatusApproved)
	_, err = e.items.AddComment(ctx, booker.ID, item.ID, "nice")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "ongoing booking does not unlock comments")

	// A finished booking counts even if it was never approved.
	e.booking(t, item.ID, booker.ID, -3*time.Hour, -2*time.Hour, models.StatusRejected)
	c, err := e.items.AddComment(ctx, booker.ID, item.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, "booker", c.AuthorName)
	assert.Equal(t, testNow, c.Created)
	e.bus.AssertCalled(t, "PublishJSON", events.EventCommentAdded, mock.Anything)

	_, err = e.items.AddComment(ctx, booker.ID, item.ID, "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = e.items.AddComment(ctx, booker.ID, 999, "nice")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

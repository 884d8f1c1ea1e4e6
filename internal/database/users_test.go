package database

import (
	"context"
	"testing"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	u := &models.User{Name: "Ann", Email: "ann@example.com"}
	require.NoError(t, db.CreateUser(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)

	got.Name = "Anna"
	require.NoError(t, db.UpdateUser(ctx, got))
	got, err = db.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)

	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Bob", Email: "bob@example.com"}))
	users, err := db.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Anna", users[0].Name)

	require.NoError(t, db.DeleteUser(ctx, u.ID))
	_, err = db.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteUser(ctx, u.ID), ErrNotFound)
}

func TestUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateUser(ctx, &models.User{Name: "Ann", Email: "ann@example.com"}))
	err := db.CreateUser(ctx, &models.User{Name: "Other", Email: "ann@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	bob := &models.User{Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, db.CreateUser(ctx, bob))
	bob.Email = "ann@example.com"
	assert.ErrorIs(t, db.UpdateUser(ctx, bob), ErrDuplicateEmail)
}

func TestUpdateMissingUser(t *testing.T) {
	db := setupTestDB(t)
	err := db.UpdateUser(context.Background(), &models.User{ID: 42, Name: "x", Email: "x@example.com"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := &models.User{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.CreateUser(ctx, owner))
	item := &models.Item{Name: "Drill", Description: "cordless", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(ctx, item))

	require.NoError(t, db.DeleteUser(ctx, owner.ID))
	_, err := db.GetItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

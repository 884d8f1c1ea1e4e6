package service

import (
	"context"
	"testing"

	"shareit/internal/apperr"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ann, err := e.users.Create(ctx, &models.User{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, ann.ID)

	_, err = e.users.Create(ctx, &models.User{Name: "Again", Email: "ann@example.com"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	got, err := e.users.Update(ctx, ann.ID, models.UserUpdate{Name: strPtr("Anna")})
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name)
	assert.Equal(t, "ann@example.com", got.Email)

	_, err = e.users.Update(ctx, ann.ID, models.UserUpdate{Email: strPtr("not-an-email")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = e.users.Update(ctx, 999, models.UserUpdate{})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	users, err := e.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, e.users.Delete(ctx, ann.ID))
	_, err = e.users.Get(ctx, ann.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.True(t, apperr.IsKind(e.users.Delete(ctx, ann.ID), apperr.KindNotFound))
}

func TestCreateUserValidation(t *testing.T) {
	e := newEnv(t)
	_, err := e.users.Create(context.Background(), &models.User{Name: "", Email: "x@example.com"})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

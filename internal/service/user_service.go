package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/apperr"
	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: componentLogger(logger, "user_service")}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateName(user.Name); err != nil {
		return nil, err
	}
	if err := models.ValidateEmail(user.Email); err != nil {
		return nil, err
	}

	created := *user
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		return r.CreateUser(ctx, &created)
	})
	if err != nil {
		return nil, userWriteErr(err, created.Email)
	}
	s.logger.Info().Int64("user_id", created.ID).Msg("user created")
	return &created, nil
}

func (s *UserService) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.User, error) {
	if upd.Name != nil {
		if err := validateName(*upd.Name); err != nil {
			return nil, err
		}
	}
	if upd.Email != nil {
		if err := models.ValidateEmail(*upd.Email); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		u, err := r.GetUser(ctx, id)
		if err != nil {
			return lookupErr(err, "user", id)
		}
		upd.Apply(u)
		if err := r.UpdateUser(ctx, u); err != nil {
			return userWriteErr(err, u.Email)
		}
		user = u
		return nil
	})
	return user, err
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		u, err := r.GetUser(ctx, id)
		if err != nil {
			return lookupErr(err, "user", id)
		}
		user = u
		return nil
	})
	return user, err
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		var err error
		users, err = r.ListUsers(ctx)
		return err
	})
	return users, err
}

// Delete removes the user together with their items, bookings, requests
// and comments.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if err := r.DeleteUser(ctx, id); err != nil {
			return lookupErr(err, "user", id)
		}
		return nil
	})
	if err == nil {
		s.logger.Info().Int64("user_id", id).Msg("user deleted")
	}
	return err
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("user name must not be blank")
	}
	return nil
}

func userWriteErr(err error, email string) error {
	if errors.Is(err, database.ErrDuplicateEmail) {
		return apperr.Conflict("email %s is already in use", email)
	}
	return err
}

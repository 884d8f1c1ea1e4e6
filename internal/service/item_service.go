package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type ItemService struct {
	repo     domain.Repository
	eventBus domain.EventPublisher
	now      func() time.Time
	logger   *zerolog.Logger
}

func NewItemService(repo domain.Repository, eventBus domain.EventPublisher, logger *zerolog.Logger) *ItemService {
	return &ItemService{
		repo:     repo,
		eventBus: eventBus,
		now:      time.Now,
		logger:   componentLogger(logger, "item_service"),
	}
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, item *models.Item) (*models.Item, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, apperr.Validation("item name must not be blank")
	}
	if strings.TrimSpace(item.Description) == "" {
		return nil, apperr.Validation("item description must not be blank")
	}

	created := *item
	created.OwnerID = ownerID
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, ownerID); err != nil {
			return lookupErr(err, "user", ownerID)
		}
		if created.RequestID != nil {
			if _, err := r.GetRequest(ctx, *created.RequestID); err != nil {
				return lookupErr(err, "request", *created.RequestID)
			}
		}
		return r.CreateItem(ctx, &created)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", created.ID).Int64("owner_id", ownerID).Msg("item created")
	return &created, nil
}

// Update applies a partial change. Only the owner may update; anyone else
// gets not found.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, upd models.ItemUpdate) (*models.Item, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, apperr.Validation("item name must not be blank")
	}
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		return nil, apperr.Validation("item description must not be blank")
	}

	var item *models.Item
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, ownerID); err != nil {
			return lookupErr(err, "user", ownerID)
		}
		it, err := r.GetItem(ctx, itemID)
		if err != nil {
			return lookupErr(err, "item", itemID)
		}
		if it.OwnerID != ownerID {
			return apperr.NotFound("item %d not found", itemID)
		}
		upd.Apply(it)
		if err := r.UpdateItem(ctx, it); err != nil {
			return err
		}
		item = it
		return nil
	})
	return item, err
}

// Get returns the item with its comments. Last and next bookings are only
// filled in when userID is the owner.
func (s *ItemService) Get(ctx context.Context, userID, itemID int64) (*models.ItemView, error) {
	var view *models.ItemView
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, userID); err != nil {
			return lookupErr(err, "user", userID)
		}
		item, err := r.GetItem(ctx, itemID)
		if err != nil {
			return lookupErr(err, "item", itemID)
		}
		view, err = s.view(ctx, r, item, item.OwnerID == userID, s.now())
		return err
	})
	return view, err
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, skip, take int) ([]*models.ItemView, error) {
	var views []*models.ItemView
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, ownerID); err != nil {
			return lookupErr(err, "user", ownerID)
		}
		items, err := r.ListItemsByOwner(ctx, ownerID, skip, take)
		if err != nil {
			return err
		}
		now := s.now()
		views = make([]*models.ItemView, 0, len(items))
		for _, item := range items {
			v, err := s.view(ctx, r, item, true, now)
			if err != nil {
				return err
			}
			views = append(views, v)
		}
		return nil
	})
	return views, err
}

// Search returns available items whose name or description contains text.
// Blank text matches nothing.
func (s *ItemService) Search(ctx context.Context, text string, skip, take int) ([]*models.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*models.Item{}, nil
	}
	var items []*models.Item
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		var err error
		items, err = r.SearchItems(ctx, text, skip, take)
		return err
	})
	return items, err
}

// AddComment accepts a comment only from a user with a finished booking of
// the item, whatever that booking's status.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validation("comment text must not be blank")
	}

	var comment *models.Comment
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		author, err := r.GetUser(ctx, authorID)
		if err != nil {
			return lookupErr(err, "user", authorID)
		}
		if _, err := r.GetItem(ctx, itemID); err != nil {
			return lookupErr(err, "item", itemID)
		}

		now := s.now()
		rented, err := r.HasCompletedBooking(ctx, authorID, itemID, now)
		if err != nil {
			return err
		}
		if !rented {
			return apperr.Validation("user has not rented this item")
		}

		c := &models.Comment{
			Text:       text,
			ItemID:     itemID,
			AuthorID:   authorID,
			AuthorName: author.Name,
			Created:    now,
		}
		if err := r.CreateComment(ctx, c); err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		payload := events.CommentEventPayload{CommentID: comment.ID, ItemID: itemID, AuthorID: authorID}
		if err := s.eventBus.PublishJSON(events.EventCommentAdded, payload); err != nil {
			s.logger.Error().Err(err).Int64("comment_id", comment.ID).Msg("publish event error")
		}
	}
	return comment, nil
}

func (s *ItemService) view(ctx context.Context, r domain.Repository, item *models.Item, owner bool, now time.Time) (*models.ItemView, error) {
	v := &models.ItemView{Item: *item}
	if owner {
		last, err := r.LastBooking(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		next, err := r.NextBooking(ctx, item.ID, now)
		if err != nil {
			return nil, err
		}
		v.LastBooking = last.Info()
		v.NextBooking = next.Info()
	}
	comments, err := r.ListCommentsByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	v.Comments = comments
	return v, nil
}

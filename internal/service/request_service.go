package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type RequestService struct {
	repo   domain.Repository
	now    func() time.Time
	logger *zerolog.Logger
}

func NewRequestService(repo domain.Repository, logger *zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, now: time.Now, logger: componentLogger(logger, "request_service")}
}

func (s *RequestService) Create(ctx context.Context, requestorID int64, description string) (*models.RequestView, error) {
	if strings.TrimSpace(description) == "" {
		return nil, apperr.Validation("request description must not be blank")
	}

	req := &models.Request{Description: description, RequestorID: requestorID, Created: s.now()}
	err := s.repo.WithTx(ctx, false, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, requestorID); err != nil {
			return lookupErr(err, "user", requestorID)
		}
		return r.CreateRequest(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("request_id", req.ID).Int64("requestor_id", requestorID).Msg("request created")
	return &models.RequestView{Request: *req, Items: []*models.Item{}}, nil
}

// ListOwn returns the user's requests, newest first, each with the items
// offered against it.
func (s *RequestService) ListOwn(ctx context.Context, requestorID int64) ([]*models.RequestView, error) {
	var views []*models.RequestView
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, requestorID); err != nil {
			return lookupErr(err, "user", requestorID)
		}
		reqs, err := r.ListRequestsByRequestor(ctx, requestorID)
		if err != nil {
			return err
		}
		views, err = withItems(ctx, r, reqs)
		return err
	})
	return views, err
}

// ListOthers pages through everyone else's requests, newest first.
func (s *RequestService) ListOthers(ctx context.Context, userID int64, skip, take int) ([]*models.RequestView, error) {
	var views []*models.RequestView
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, userID); err != nil {
			return lookupErr(err, "user", userID)
		}
		reqs, err := r.ListOtherRequests(ctx, userID, skip, take)
		if err != nil {
			return err
		}
		views, err = withItems(ctx, r, reqs)
		return err
	})
	return views, err
}

func (s *RequestService) Get(ctx context.Context, userID, requestID int64) (*models.RequestView, error) {
	var view *models.RequestView
	err := s.repo.WithTx(ctx, true, func(r domain.Repository) error {
		if _, err := r.GetUser(ctx, userID); err != nil {
			return lookupErr(err, "user", userID)
		}
		req, err := r.GetRequest(ctx, requestID)
		if err != nil {
			return lookupErr(err, "request", requestID)
		}
		views, err := withItems(ctx, r, []*models.Request{req})
		if err != nil {
			return err
		}
		view = views[0]
		return nil
	})
	return view, err
}

func withItems(ctx context.Context, r domain.Repository, reqs []*models.Request) ([]*models.RequestView, error) {
	ids := make([]int64, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ID)
	}
	items, err := r.ListItemsByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[int64][]*models.Item, len(reqs))
	for _, item := range items {
		if item.RequestID != nil {
			byRequest[*item.RequestID] = append(byRequest[*item.RequestID], item)
		}
	}

	views := make([]*models.RequestView, 0, len(reqs))
	for _, req := range reqs {
		its := byRequest[req.ID]
		if its == nil {
			its = []*models.Item{}
		}
		views = append(views, &models.RequestView{Request: *req, Items: its})
	}
	return views, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateRequest(ctx context.Context, req *models.Request) error {
	req.Created = utc(req.Created)
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`,
		req.Description, req.RequestorID, req.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", mapError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	req.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	row := db.q.QueryRowContext(ctx, `SELECT id, description, requestor_id, created FROM requests WHERE id = ?`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request %d: %w", id, err)
	}
	return req, nil
}

// ListRequestsByRequestor returns the user's own requests, newest first.
func (db *DB) ListRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.Request, error) {
	return db.queryRequests(ctx,
		`SELECT id, description, requestor_id, created FROM requests WHERE requestor_id = ? ORDER BY created DESC, id DESC`,
		requestorID)
}

// ListOtherRequests returns requests made by anyone except requestorID, newest first.
func (db *DB) ListOtherRequests(ctx context.Context, requestorID int64, skip, take int) ([]*models.Request, error) {
	return db.queryRequests(ctx,
		`SELECT id, description, requestor_id, created FROM requests WHERE requestor_id <> ?
		 ORDER BY created DESC, id DESC LIMIT ? OFFSET ?`,
		requestorID, take, skip)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.Request, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	reqs := []*models.Request{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, rows.Err()
}

func scanRequest(s scanner) (*models.Request, error) {
	var req models.Request
	if err := s.Scan(&req.ID, &req.Description, &req.RequestorID, &req.Created); err != nil {
		return nil, err
	}
	req.Created = req.Created.UTC()
	return &req, nil
}

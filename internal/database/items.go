package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shareit/internal/models"
)

const itemColumns = `id, name, description, available, owner_id, request_id`

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)`,
		item.Name, item.Description, item.Available, item.OwnerID, nullInt64(item.RequestID),
	)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", mapError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	item.ID = id
	return nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	row := db.q.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return item, nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	result, err := db.q.ExecContext(ctx,
		`UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`,
		item.Name, item.Description, item.Available, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", mapError(err))
	}
	return requireAffected(result)
}

func (db *DB) ListItemsByOwner(ctx context.Context, ownerID int64, skip, take int) ([]*models.Item, error) {
	return db.queryItems(ctx, `SELECT `+itemColumns+` FROM items WHERE owner_id = ? ORDER BY id LIMIT ? OFFSET ?`,
		ownerID, take, skip)
}

// SearchItems matches text case-insensitively against name or description
// of available items only.
func (db *DB) SearchItems(ctx context.Context, text string, skip, take int) ([]*models.Item, error) {
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	return db.queryItems(ctx, `SELECT `+itemColumns+` FROM items
		WHERE available = 1
		AND (ulower(name) LIKE ? ESCAPE '\' OR ulower(description) LIKE ? ESCAPE '\')
		ORDER BY id LIMIT ? OFFSET ?`,
		pattern, pattern, take, skip)
}

func (db *DB) ListItemsByRequests(ctx context.Context, requestIDs []int64) ([]*models.Item, error) {
	if len(requestIDs) == 0 {
		return []*models.Item{}, nil
	}
	args := make([]any, len(requestIDs))
	for i, id := range requestIDs {
		args[i] = id
	}
	return db.queryItems(ctx, `SELECT `+itemColumns+` FROM items WHERE request_id IN (`+placeholders(len(requestIDs))+`) ORDER BY id`,
		args...)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...any) ([]*models.Item, error) {
	rows, err := db.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*models.Item, error) {
	var (
		item      models.Item
		requestID sql.NullInt64
	)
	if err := s.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID); err != nil {
		return nil, err
	}
	item.RequestID = int64Ptr(requestID)
	return &item, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

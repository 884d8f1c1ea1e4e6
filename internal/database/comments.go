package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.Created = utc(comment.Created)
	result, err := db.q.ExecContext(ctx,
		`INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`,
		comment.Text, comment.ItemID, comment.AuthorID, comment.Created,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", mapError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

// ListCommentsByItem returns the item's comments oldest first, with the
// author's current name.
func (db *DB) ListCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	rows, err := db.q.QueryContext(ctx, `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ?
		ORDER BY c.created, c.id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		c.Created = c.Created.UTC()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

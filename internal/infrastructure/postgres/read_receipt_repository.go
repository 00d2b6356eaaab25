package postgres

import (
	"context"
	"fmt"

	"blog/internal/domain"
)

// RecordRead stores at most one receipt per (post, user).
func (r *Repository) RecordRead(ctx context.Context, receipt domain.ReadReceipt) error {
	_, err := conn(ctx, r.db).Exec(ctx, `
		INSERT INTO read_receipts (post_id, user_id, read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, receipt.PostID, receipt.UserID, receipt.ReadAt)
	if err != nil {
		if hasPgCode(err, foreignKeyViolation) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("failed to record read receipt: %w", err)
	}
	return nil
}

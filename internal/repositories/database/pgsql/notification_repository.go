package pgsql

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	"github.com/staffdesk/ops_portal_app/internal/models"
	"github.com/staffdesk/ops_portal_app/internal/utils/pagination"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notification data.
func newPgxNotificationRepository(pool *pgxpool.Pool) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxNotificationRepository implements portsrepo.NotificationRepositoryFacade
var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

const notificationColumns = `
	notification_id, user_id, type, title, message, metadata, read_at, created_at`

func scanNotification(row pgx.Row) (models.Notification, error) {
	var n models.Notification
	var metadataJSON []byte
	err := row.Scan(
		&n.NotificationID,
		&n.UserID,
		&n.Type,
		&n.Title,
		&n.Message,
		&metadataJSON,
		&n.ReadAt,
		&n.CreatedAt,
	)
	if err != nil {
		return n, err
	}
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &n.Metadata); err != nil {
			return n, err
		}
	}
	return n, nil
}

func toDomainNotification(m models.Notification) domain.Notification {
	return domain.Notification{
		NotificationID: m.NotificationID,
		UserID:         m.UserID,
		Type:           domain.NotificationType(m.Type),
		Title:          m.Title,
		Message:        m.Message,
		Metadata:       m.Metadata,
		ReadAt:         m.ReadAt,
		CreatedAt:      m.CreatedAt,
	}
}

// SaveNotifications inserts notification rows in one batch.
func (r *PgxNotificationRepository) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := `
		INSERT INTO notifications (notification_id, user_id, type, title, message, metadata, read_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, n := range notifications {
		metadataJSON, err := json.Marshal(n.Metadata)
		if err != nil {
			return apperrors.NewAppError(500, "failed to marshal notification metadata "+n.NotificationID, err)
		}
		batch.Queue(query,
			n.NotificationID,
			n.UserID,
			string(n.Type),
			n.Title,
			n.Message,
			metadataJSON,
			n.ReadAt,
			n.CreatedAt,
		)
	}

	br := r.Pool.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute notification insert batch", err)
	}
	return nil
}

// ListNotificationsByUser retrieves a paginated list of notifications for a user, newest first.
func (r *PgxNotificationRepository) ListNotificationsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Notification, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	args := []interface{}{userID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query notifications for user "+userID, err)
	}
	defer rows.Close()

	notifications := make([]models.Notification, 0, fetchLimit)
	for rows.Next() {
		n, scanErr := scanNotification(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan notification row for user "+userID, scanErr)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating notification rows for user "+userID, err)
	}

	var nextTokenVal *string
	if len(notifications) > limit {
		lastNotif := notifications[limit-1]
		token := pagination.EncodeDateBasedToken(lastNotif.CreatedAt)
		nextTokenVal = &token
		notifications = notifications[:limit]
	}

	results := make([]domain.Notification, len(notifications))
	for i, n := range notifications {
		results[i] = toDomainNotification(n)
	}
	return results, nextTokenVal, nil
}

// CountUnreadByUser counts notifications of a user without a read timestamp.
func (r *PgxNotificationRepository) CountUnreadByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count unread notifications for user "+userID, err)
	}
	return count, nil
}

// MarkRead sets the read timestamp on a single notification owned by the user.
func (r *PgxNotificationRepository) MarkRead(ctx context.Context, userID string, notificationID string, readAt time.Time) error {
	query := `UPDATE notifications SET read_at = $3 WHERE notification_id = $1 AND user_id = $2 AND read_at IS NULL;`

	cmdTag, err := r.Pool.Exec(ctx, query, notificationID, userID, readAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark notification read "+notificationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either not found, not owned by the user, or already read.
		var exists bool
		checkErr := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM notifications WHERE notification_id = $1 AND user_id = $2);`, notificationID, userID).Scan(&exists)
		if checkErr != nil {
			return apperrors.NewAppError(500, "failed to check notification "+notificationID, checkErr)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

// MarkAllRead sets the read timestamp on every unread notification of the user.
func (r *PgxNotificationRepository) MarkAllRead(ctx context.Context, userID string, readAt time.Time) error {
	query := `UPDATE notifications SET read_at = $2 WHERE user_id = $1 AND read_at IS NULL;`

	if _, err := r.Pool.Exec(ctx, query, userID, readAt); err != nil {
		return apperrors.NewAppError(500, "failed to mark all notifications read for user "+userID, err)
	}
	return nil
}

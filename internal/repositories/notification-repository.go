package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
)

const notificationTable = "notifications"

var notificationColumns = []string{"id", "user_id", "message", "type", "read", "created_at"}

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, n *entities.Notification) error
	FindByUserID(ctx context.Context, userID string, limit uint64) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
}

func NewNotificationRepository(storage *pgxpool.Pool) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage}
}

func (r *NotificationRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *NotificationRepository) Create(ctx context.Context, tx pgx.Tx, n *entities.Notification) error {
	query, args, err := psql.Insert(notificationTable).
		Columns(notificationColumns...).
		Values(n.ID, n.UserID, n.Message, n.Type, n.Read, n.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao criar notificação: %w", err)
	}
	return nil
}

func buildNotificationListQuery(userID string, limit uint64) sq.SelectBuilder {
	return psql.Select(notificationColumns...).
		From(notificationTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit)
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userID string, limit uint64) ([]entities.Notification, error) {
	query, args, err := buildNotificationListQuery(userID, limit).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0)
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead не считает ошибкой отсутствие подходящей записи.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	query, args, err := psql.Update(notificationTable).
		Set("read", true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.storage.Exec(ctx, query, args...)
	return err
}

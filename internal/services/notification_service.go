// Файл: internal/services/notification_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	"inventory-system/pkg/utils"
)

type NotificationServiceInterface interface {
	Notify(ctx context.Context, tx pgx.Tx, userID, message, notificationType string) error
	// NotifyAdmins рассылает одно сообщение всем администраторам (не более 100).
	NotifyAdmins(ctx context.Context, tx pgx.Tx, message, notificationType string) error
	GetNotifications(ctx context.Context) ([]entities.Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type NotificationService struct {
	repo     repositories.NotificationRepositoryInterface
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
	now      func() time.Time
}

func NewNotificationService(
	repo repositories.NotificationRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, logger: logger, now: time.Now}
}

func (s *NotificationService) Notify(ctx context.Context, tx pgx.Tx, userID, message, notificationType string) error {
	n := &entities.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Message:   message,
		Type:      notificationType,
		Read:      false,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, tx, n); err != nil {
		s.logger.Error("erro ao criar notificação", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	return nil
}

func (s *NotificationService) NotifyAdmins(ctx context.Context, tx pgx.Tx, message, notificationType string) error {
	admins, err := s.userRepo.FindByRole(ctx, tx, constants.RoleAdmin, constants.MaxAdminRecipients)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		if err := s.Notify(ctx, tx, admin.ID, message, notificationType); err != nil {
			return err
		}
	}
	s.logger.Debug("notificação enviada aos administradores", zap.Int("recipients", len(admins)))
	return nil
}

func (s *NotificationService) GetNotifications(ctx context.Context) ([]entities.Notification, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByUserID(ctx, actor.ID, constants.MaxNotificationResults)
}

// MarkRead трогает только уведомления текущего пользователя; чужой или несуществующий id - не ошибка.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id, actor.ID)
}

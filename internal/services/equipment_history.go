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
)

// EquipmentHistoryServiceInterface - журнал аудита оборудования, только добавление.
type EquipmentHistoryServiceInterface interface {
	Record(ctx context.Context, tx pgx.Tx, equipmentID, action, description, user string) error
	GetHistory(ctx context.Context, equipmentID string) ([]entities.EquipmentHistory, error)
}

type EquipmentHistoryService struct {
	repo   repositories.EquipmentHistoryRepositoryInterface
	logger *zap.Logger
	now    func() time.Time
}

func NewEquipmentHistoryService(repo repositories.EquipmentHistoryRepositoryInterface, logger *zap.Logger) *EquipmentHistoryService {
	return &EquipmentHistoryService{repo: repo, logger: logger, now: time.Now}
}

func (s *EquipmentHistoryService) Record(ctx context.Context, tx pgx.Tx, equipmentID, action, description, user string) error {
	entry := &entities.EquipmentHistory{
		ID:          uuid.NewString(),
		EquipmentID: equipmentID,
		Action:      action,
		Description: description,
		User:        user,
		Timestamp:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, tx, entry); err != nil {
		s.logger.Error("erro ao gravar histórico",
			zap.String("equipment_id", equipmentID),
			zap.String("action", action),
			zap.Error(err))
		return err
	}
	return nil
}

// GetHistory для несуществующего оборудования отдаёт пустой список.
func (s *EquipmentHistoryService) GetHistory(ctx context.Context, equipmentID string) ([]entities.EquipmentHistory, error) {
	return s.repo.FindByEquipmentID(ctx, equipmentID, constants.MaxHistoryResults)
}

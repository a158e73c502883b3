package seeders

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"inventory-system/internal/services"
	"inventory-system/pkg/config"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

// seedActor - от его имени пишется история для стартовых записей.
var seedActor = types.Actor{ID: "seed", Username: "Sistema - Carga Inicial", Role: constants.RoleAdmin}

// SeedAdmin создаёт администратора по умолчанию, если его ещё нет.
func SeedAdmin(ctx context.Context, authService services.AuthServiceInterface, cfg *config.Config, logger *zap.Logger) error {
	logger.Info("seed: verificando administrador", zap.String("username", cfg.Seed.AdminUsername))
	return authService.EnsureAdmin(ctx, cfg.Seed.AdminUsername, cfg.Seed.AdminPassword)
}

// SeedEquipments заводит стартовое оборудование через обычный путь создания.
// Уже существующие номера пропускаются, поэтому запуск можно повторять.
func SeedEquipments(ctx context.Context, equipmentService services.EquipmentServiceInterface, logger *zap.Logger) (int, error) {
	ctx = utils.WithActor(ctx, seedActor)

	created := 0
	for _, item := range equipmentsData {
		_, err := equipmentService.CreateEquipment(ctx, item)
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrConflict):
			logger.Debug("seed: equipamento já existe", zap.String("numero_patrimonio", item.NumeroPatrimonio))
		default:
			return created, err
		}
	}

	logger.Info("seed: equipamentos criados", zap.Int("created", created), zap.Int("total", len(equipmentsData)))
	return created, nil
}

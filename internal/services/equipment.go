package services

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"
)

const (
	msgEquipmentNotFound   = "Equipamento não encontrado"
	msgPatrimonioExists    = "Número de patrimônio já existe"
	msgOnlyAdminsCanDelete = "Apenas administradores podem deletar"
	msgOnlyPDFAllowed      = "Apenas arquivos PDF são permitidos"
)

type EquipmentServiceInterface interface {
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error)
	GetEquipment(ctx context.Context, id string) (*entities.Equipment, error)
	GetEquipments(ctx context.Context, filter dto.EquipmentFilterDTO) ([]entities.Equipment, error)
	GetAvailableEquipments(ctx context.Context) ([]entities.Equipment, error)
	UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error)
	DeleteEquipment(ctx context.Context, id string) error
	AttachTermo(ctx context.Context, id string, content []byte, contentType string) error
	GetHistory(ctx context.Context, id string) ([]entities.EquipmentHistory, error)
}

type EquipmentService struct {
	txManager     repositories.TxManagerInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	history       EquipmentHistoryServiceInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewEquipmentService(
	txManager repositories.TxManagerInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	history EquipmentHistoryServiceInterface,
	logger *zap.Logger,
) *EquipmentService {
	return &EquipmentService{
		txManager:     txManager,
		equipmentRepo: equipmentRepo,
		history:       history,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (*entities.Equipment, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, payload, "Equipamento criado: "+payload.NumeroPatrimonio, actor.Username)
}

// create - общий путь создания для API и импорта: проверка уникальности, вставка и запись аудита в одной транзакции.
func (s *EquipmentService) create(ctx context.Context, payload dto.CreateEquipmentDTO, description, user string) (*entities.Equipment, error) {
	now := s.now().UTC()
	equipment := &entities.Equipment{
		ID:                uuid.NewString(),
		NumeroPatrimonio:  payload.NumeroPatrimonio,
		NumeroSerie:       payload.NumeroSerie,
		Marca:             payload.Marca,
		Modelo:            payload.Modelo,
		TipoEquipamento:   payload.TipoEquipamento,
		DepartamentoAtual: payload.DepartamentoAtual,
		ResponsavelAtual:  null.StringFromPtr(payload.ResponsavelAtual),
		Status:            constants.EquipmentStatusAvailable,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if payload.Status != "" {
		equipment.Status = payload.Status
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		_, err := s.equipmentRepo.FindByPatrimonio(ctx, tx, payload.NumeroPatrimonio, false)
		if err == nil {
			return apperrors.NewConflictError(msgPatrimonioExists)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}

		if err := s.equipmentRepo.Create(ctx, tx, equipment); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				return apperrors.NewConflictError(msgPatrimonioExists)
			}
			return err
		}
		return s.history.Record(ctx, tx, equipment.ID, constants.HistoryActionCreated, description, user)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipamento criado",
		zap.String("id", equipment.ID),
		zap.String("numero_patrimonio", equipment.NumeroPatrimonio),
		zap.String("user", user))
	return equipment, nil
}

func (s *EquipmentService) GetEquipment(ctx context.Context, id string) (*entities.Equipment, error) {
	equipment, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgEquipmentNotFound)
		}
		return nil, err
	}
	return equipment, nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, filter dto.EquipmentFilterDTO) ([]entities.Equipment, error) {
	return s.equipmentRepo.List(ctx, entities.EquipmentFilter{
		Tipo:         filter.Tipo,
		Departamento: filter.Departamento,
		Status:       filter.Status,
		Search:       filter.Search,
		Limit:        constants.MaxListResults,
	})
}

func (s *EquipmentService) GetAvailableEquipments(ctx context.Context) ([]entities.Equipment, error) {
	return s.equipmentRepo.List(ctx, entities.EquipmentFilter{
		Status: constants.EquipmentStatusAvailable,
		Limit:  constants.MaxListResults,
	})
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*entities.Equipment, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var updated *entities.Equipment
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipment, err := s.equipmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(msgEquipmentNotFound)
			}
			return err
		}

		applyEquipmentUpdate(equipment, payload)
		equipment.UpdatedAt = s.now().UTC()

		if err := s.equipmentRepo.Update(ctx, tx, equipment); err != nil {
			return err
		}
		updated = equipment
		return s.history.Record(ctx, tx, equipment.ID, constants.HistoryActionUpdated, "Equipamento atualizado", actor.Username)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyEquipmentUpdate: nil-поле не меняет значение.
func applyEquipmentUpdate(e *entities.Equipment, payload dto.UpdateEquipmentDTO) {
	if payload.NumeroSerie != nil {
		e.NumeroSerie = *payload.NumeroSerie
	}
	if payload.Marca != nil {
		e.Marca = *payload.Marca
	}
	if payload.Modelo != nil {
		e.Modelo = *payload.Modelo
	}
	if payload.TipoEquipamento != nil {
		e.TipoEquipamento = *payload.TipoEquipamento
	}
	if payload.DepartamentoAtual != nil {
		e.DepartamentoAtual = *payload.DepartamentoAtual
	}
	if payload.ResponsavelAtual != nil {
		e.ResponsavelAtual = null.StringFrom(*payload.ResponsavelAtual)
	}
	if payload.Status != nil {
		e.Status = *payload.Status
	}
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, id string) error {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() {
		return apperrors.NewForbiddenError(msgOnlyAdminsCanDelete)
	}

	if err := s.equipmentRepo.Delete(ctx, nil, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(msgEquipmentNotFound)
		}
		return err
	}
	s.logger.Info("equipamento excluído", zap.String("id", id), zap.String("user", actor.Username))
	return nil
}

func (s *EquipmentService) AttachTermo(ctx context.Context, id string, content []byte, contentType string) error {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.equipmentRepo.FindByID(ctx, tx, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(msgEquipmentNotFound)
			}
			return err
		}
		if contentType != constants.ContentTypePDF {
			return apperrors.NewHttpError(http.StatusBadRequest, msgOnlyPDFAllowed, apperrors.ErrBadRequest, nil)
		}

		encoded := base64.StdEncoding.EncodeToString(content)
		if err := s.equipmentRepo.AttachTermo(ctx, tx, id, encoded); err != nil {
			return err
		}
		return s.history.Record(ctx, tx, id, constants.HistoryActionTermUploaded, "Termo de responsabilidade anexado", actor.Username)
	})
}

func (s *EquipmentService) GetHistory(ctx context.Context, id string) ([]entities.EquipmentHistory, error) {
	return s.history.GetHistory(ctx, id)
}

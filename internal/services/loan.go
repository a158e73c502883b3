package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

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
	msgLoanNotFound        = "Empréstimo não encontrado"
	msgLoanAlreadyReturned = "Empréstimo já devolvido"
)

type LoanServiceInterface interface {
	CreateLoan(ctx context.Context, payload dto.CreateLoanDTO) (*entities.Loan, error)
	CreatePublicLoan(ctx context.Context, payload dto.CreateLoanDTO) (*entities.Loan, error)
	GetLoans(ctx context.Context, filter dto.LoanFilterDTO) ([]entities.Loan, error)
	GetLoan(ctx context.Context, id string) (*entities.Loan, error)
	ReturnLoan(ctx context.Context, id string, payload dto.ReturnLoanDTO) error
	GetAllLoans(ctx context.Context) ([]entities.Loan, error)
}

type LoanService struct {
	txManager     repositories.TxManagerInterface
	loanRepo      repositories.LoanRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	history       EquipmentHistoryServiceInterface
	notifications NotificationServiceInterface
	logger        *zap.Logger
	now           func() time.Time
}

func NewLoanService(
	txManager repositories.TxManagerInterface,
	loanRepo repositories.LoanRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	history EquipmentHistoryServiceInterface,
	notifications NotificationServiceInterface,
	logger *zap.Logger,
) *LoanService {
	return &LoanService{
		txManager:     txManager,
		loanRepo:      loanRepo,
		equipmentRepo: equipmentRepo,
		history:       history,
		notifications: notifications,
		logger:        logger,
		now:           time.Now,
	}
}

// loanOrigin описывает, от чьего имени пишется аудит и кому уходят уведомления.
type loanOrigin struct {
	auditUser         string
	descriptionSuffix string
	notify            func(ctx context.Context, tx pgx.Tx, loan *entities.Loan) error
}

func (s *LoanService) CreateLoan(ctx context.Context, payload dto.CreateLoanDTO) (*entities.Loan, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	return s.createLoan(ctx, payload, loanOrigin{
		auditUser: actor.Username,
		notify: func(ctx context.Context, tx pgx.Tx, loan *entities.Loan) error {
			msg := fmt.Sprintf("Empréstimo criado: %s - %d equipamento(s)", loan.NomeSolicitante, len(loan.Equipments))
			return s.notifications.Notify(ctx, tx, actor.ID, msg, constants.NotificationLoanCreated)
		},
	})
}

// CreatePublicLoan - заявка без аутентификации; уведомляются все администраторы.
func (s *LoanService) CreatePublicLoan(ctx context.Context, payload dto.CreateLoanDTO) (*entities.Loan, error) {
	return s.createLoan(ctx, payload, loanOrigin{
		auditUser:         constants.PublicRequestActor,
		descriptionSuffix: " (Solicitação Pública)",
		notify: func(ctx context.Context, tx pgx.Tx, loan *entities.Loan) error {
			msg := fmt.Sprintf("Nova solicitação de empréstimo: %s - %d equipamento(s)", loan.NomeSolicitante, len(loan.Equipments))
			return s.notifications.NotifyAdmins(ctx, tx, msg, constants.NotificationLoanCreated)
		},
	})
}

func (s *LoanService) createLoan(ctx context.Context, payload dto.CreateLoanDTO, origin loanOrigin) (*entities.Loan, error) {
	dataEmprestimo, err := utils.ParseDate(payload.DataEmprestimo)
	if err != nil {
		return nil, apperrors.NewBadRequestError("data_emprestimo inválida")
	}
	dataPrevista, err := utils.ParseDate(payload.DataPrevistaDevolucao)
	if err != nil {
		return nil, apperrors.NewBadRequestError("data_prevista_devolucao inválida")
	}
	if tag, dup := firstDuplicate(payload.Equipments); dup {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Equipamento %s repetido na solicitação", tag))
	}

	loan := &entities.Loan{
		ID:                      uuid.NewString(),
		DataEmprestimo:          dataEmprestimo,
		NomeSolicitante:         payload.NomeSolicitante,
		DepartamentoSolicitante: payload.DepartamentoSolicitante,
		DataPrevistaDevolucao:   dataPrevista,
		StatusDevolucao:         constants.LoanStatusPending,
		Equipments:              append([]string(nil), payload.Equipments...),
		CreatedAt:               s.now().UTC(),
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, err := s.lockEquipments(ctx, tx, loan.Equipments)
		if err != nil {
			return err
		}

		// Сначала проверяем все позиции, только потом что-то пишем.
		for _, tag := range loan.Equipments {
			equipment, ok := locked[tag]
			if !ok {
				return apperrors.NewNotFoundError(fmt.Sprintf("Equipamento %s não encontrado", tag))
			}
			if equipment.Status == constants.EquipmentStatusLoaned {
				return apperrors.NewConflictError(fmt.Sprintf("Equipamento %s já está emprestado", tag))
			}
		}

		if err := s.loanRepo.Create(ctx, tx, loan); err != nil {
			return err
		}

		description := fmt.Sprintf("Emprestado para %s%s", loan.NomeSolicitante, origin.descriptionSuffix)
		for _, tag := range loan.Equipments {
			if err := s.equipmentRepo.UpdateStatus(ctx, tx, tag, constants.EquipmentStatusLoaned); err != nil {
				return err
			}
			if err := s.history.Record(ctx, tx, locked[tag].ID, constants.HistoryActionLoaned, description, origin.auditUser); err != nil {
				return err
			}
		}

		return origin.notify(ctx, tx, loan)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("empréstimo criado",
		zap.String("id", loan.ID),
		zap.Strings("equipments", loan.Equipments),
		zap.String("user", origin.auditUser))
	return loan, nil
}

// lockEquipments блокирует строки в отсортированном порядке, чтобы параллельные займы не взаимоблокировались.
// Отсутствующие номера просто не попадают в результат.
func (s *LoanService) lockEquipments(ctx context.Context, tx pgx.Tx, tags []string) (map[string]*entities.Equipment, error) {
	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)

	locked := make(map[string]*entities.Equipment, len(sorted))
	for _, tag := range sorted {
		equipment, err := s.equipmentRepo.FindByPatrimonio(ctx, tx, tag, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		locked[tag] = equipment
	}
	return locked, nil
}

func firstDuplicate(tags []string) (string, bool) {
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			return tag, true
		}
		seen[tag] = struct{}{}
	}
	return "", false
}

// GetLoans пересчитывает просрочку при чтении: "Pendente" с прошедшей датой возврата становится "Atrasado" и сохраняется.
func (s *LoanService) GetLoans(ctx context.Context, filter dto.LoanFilterDTO) ([]entities.Loan, error) {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.List(ctx, entities.LoanFilter{
		Status: filter.StatusDevolucao,
		Search: filter.Search,
		Limit:  constants.MaxListResults,
	})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var overdue []int
	for i := range loans {
		if loans[i].StatusDevolucao == constants.LoanStatusPending && now.After(loans[i].DataPrevistaDevolucao) {
			overdue = append(overdue, i)
		}
	}
	if len(overdue) == 0 {
		return loans, nil
	}

	ids := make([]string, 0, len(overdue))
	for _, i := range overdue {
		ids = append(ids, loans[i].ID)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := s.loanRepo.MarkOverdue(ctx, tx, ids); err != nil {
			return err
		}
		for _, i := range overdue {
			msg := fmt.Sprintf("Empréstimo atrasado: %s - %d equipamento(s)", loans[i].NomeSolicitante, len(loans[i].Equipments))
			if err := s.notifications.Notify(ctx, tx, actor.ID, msg, constants.NotificationLoanOverdue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, i := range overdue {
		loans[i].StatusDevolucao = constants.LoanStatusOverdue
	}
	s.logger.Info("empréstimos marcados como atrasados", zap.Int("count", len(ids)))
	return loans, nil
}

// GetAllLoans - выгрузка без фильтров и без пересчёта просрочки.
func (s *LoanService) GetAllLoans(ctx context.Context) ([]entities.Loan, error) {
	return s.loanRepo.List(ctx, entities.LoanFilter{Limit: constants.MaxListResults})
}

func (s *LoanService) GetLoan(ctx context.Context, id string) (*entities.Loan, error) {
	loan, err := s.loanRepo.FindByID(ctx, nil, id, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(msgLoanNotFound)
		}
		return nil, err
	}
	return loan, nil
}

func (s *LoanService) ReturnLoan(ctx context.Context, id string, payload dto.ReturnLoanDTO) error {
	actor, err := utils.GetActorFromCtx(ctx)
	if err != nil {
		return err
	}
	returnedAt, err := utils.ParseDate(payload.DataDevolucaoReal)
	if err != nil {
		return apperrors.NewBadRequestError("data_devolucao_real inválida")
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		loan, err := s.loanRepo.FindByID(ctx, tx, id, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(msgLoanNotFound)
			}
			return err
		}
		if loan.StatusDevolucao == constants.LoanStatusReturned {
			return apperrors.NewHttpError(http.StatusConflict, msgLoanAlreadyReturned, apperrors.ErrConflict, nil)
		}

		if err := s.loanRepo.MarkReturned(ctx, tx, loan.ID, returnedAt); err != nil {
			return err
		}

		description := fmt.Sprintf("Devolvido por %s", loan.NomeSolicitante)
		for _, tag := range loan.Equipments {
			equipment, err := s.equipmentRepo.FindByPatrimonio(ctx, tx, tag, true)
			if err != nil {
				// Оборудование могли удалить, пока заём был активен.
				if errors.Is(err, apperrors.ErrNotFound) {
					s.logger.Warn("equipamento do empréstimo não existe mais", zap.String("numero_patrimonio", tag))
					continue
				}
				return err
			}
			if err := s.equipmentRepo.UpdateStatus(ctx, tx, tag, constants.EquipmentStatusAvailable); err != nil {
				return err
			}
			if err := s.history.Record(ctx, tx, equipment.ID, constants.HistoryActionReturned, description, actor.Username); err != nil {
				return err
			}
		}

		msg := fmt.Sprintf("Empréstimo devolvido: %s - %d equipamento(s)", loan.NomeSolicitante, len(loan.Equipments))
		return s.notifications.Notify(ctx, tx, actor.ID, msg, constants.NotificationLoanReturned)
	})
	if err != nil {
		return err
	}

	s.logger.Info("empréstimo devolvido", zap.String("id", id), zap.String("user", actor.Username))
	return nil
}

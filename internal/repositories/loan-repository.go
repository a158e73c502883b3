package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

const loanTable = "loans"

var loanColumns = []string{
	"id", "data_emprestimo", "nome_solicitante", "departamento_solicitante",
	"data_prevista_devolucao", "data_devolucao_real", "status_devolucao", "equipments", "created_at",
}

type LoanRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, loan *entities.Loan) error
	FindByID(ctx context.Context, tx pgx.Tx, id string, forUpdate bool) (*entities.Loan, error)
	List(ctx context.Context, filter entities.LoanFilter) ([]entities.Loan, error)
	// MarkOverdue переводит в "Atrasado" только займы, которые всё ещё "Pendente".
	MarkOverdue(ctx context.Context, tx pgx.Tx, ids []string) (int64, error)
	MarkReturned(ctx context.Context, tx pgx.Tx, id string, returnedAt time.Time) error
}

type LoanRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewLoanRepository(storage *pgxpool.Pool, logger *zap.Logger) LoanRepositoryInterface {
	return &LoanRepository{storage: storage, logger: logger}
}

func (r *LoanRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanLoan(row pgx.Row) (*entities.Loan, error) {
	var l entities.Loan
	err := row.Scan(
		&l.ID, &l.DataEmprestimo, &l.NomeSolicitante, &l.DepartamentoSolicitante,
		&l.DataPrevistaDevolucao, &l.DataDevolucaoReal, &l.StatusDevolucao, &l.Equipments, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	if l.Equipments == nil {
		l.Equipments = []string{}
	}
	return &l, nil
}

func buildLoanListQuery(filter entities.LoanFilter) sq.SelectBuilder {
	builder := psql.Select(loanColumns...).From(loanTable)

	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status_devolucao": filter.Status})
	}
	if filter.Search != "" {
		builder = builder.Where(ilikeAny(filter.Search, "nome_solicitante", "departamento_solicitante"))
	}

	builder = builder.OrderBy("created_at ASC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	return builder
}

func (r *LoanRepository) Create(ctx context.Context, tx pgx.Tx, l *entities.Loan) error {
	query, args, err := psql.Insert(loanTable).
		Columns(loanColumns...).
		Values(
			l.ID, l.DataEmprestimo, l.NomeSolicitante, l.DepartamentoSolicitante,
			l.DataPrevistaDevolucao, l.DataDevolucaoReal, l.StatusDevolucao, l.Equipments, l.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar insert de empréstimo: %w", err)
	}
	if _, err = r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		r.logger.Error("erro ao inserir empréstimo", zap.String("id", l.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *LoanRepository) FindByID(ctx context.Context, tx pgx.Tx, id string, forUpdate bool) (*entities.Loan, error) {
	builder := psql.Select(loanColumns...).From(loanTable).Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanLoan(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *LoanRepository) List(ctx context.Context, filter entities.LoanFilter) ([]entities.Loan, error) {
	query, args, err := buildLoanListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar empréstimos: %w", err)
	}
	defer rows.Close()

	loans := make([]entities.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

func (r *LoanRepository) MarkOverdue(ctx context.Context, tx pgx.Tx, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := psql.Update(loanTable).
		Set("status_devolucao", constants.LoanStatusOverdue).
		Where(sq.Eq{"id": ids, "status_devolucao": constants.LoanStatusPending}).
		ToSql()
	if err != nil {
		return 0, err
	}
	tag, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao marcar empréstimos atrasados: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, tx pgx.Tx, id string, returnedAt time.Time) error {
	query, args, err := psql.Update(loanTable).
		Set("status_devolucao", constants.LoanStatusReturned).
		Set("data_devolucao_real", returnedAt).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	tag, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	"inventory-system/pkg/constants"
)

type DashboardRepositoryInterface interface {
	CountEquipments(ctx context.Context) (*entities.EquipmentCounts, error)
	CountLoans(ctx context.Context) (*entities.LoanCounts, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// countFilter: COUNT(*) FILTER (WHERE <col> = $n)
func countFilter(column, value string) sq.Sqlizer {
	return sq.Expr(fmt.Sprintf("COUNT(*) FILTER (WHERE %s = ?)", column), value)
}

func buildEquipmentCountsQuery() sq.SelectBuilder {
	return psql.Select("COUNT(*)").
		Column(countFilter("status", constants.EquipmentStatusAvailable)).
		Column(countFilter("status", constants.EquipmentStatusLoaned)).
		Column(countFilter("status", constants.EquipmentStatusMaintenance)).
		From(equipmentTable)
}

func buildLoanCountsQuery() sq.SelectBuilder {
	return psql.Select().
		Column(countFilter("status_devolucao", constants.LoanStatusPending)).
		Column(countFilter("status_devolucao", constants.LoanStatusOverdue)).
		From(loanTable)
}

func (r *DashboardRepository) CountEquipments(ctx context.Context) (*entities.EquipmentCounts, error) {
	query, args, err := buildEquipmentCountsQuery().ToSql()
	if err != nil {
		return nil, err
	}
	counts := &entities.EquipmentCounts{}
	err = r.storage.QueryRow(ctx, query, args...).Scan(&counts.Total, &counts.Available, &counts.Loaned, &counts.Maintenance)
	if err != nil {
		r.logger.Error("erro ao contar equipamentos", zap.Error(err))
		return nil, err
	}
	return counts, nil
}

func (r *DashboardRepository) CountLoans(ctx context.Context) (*entities.LoanCounts, error) {
	query, args, err := buildLoanCountsQuery().ToSql()
	if err != nil {
		return nil, err
	}
	counts := &entities.LoanCounts{}
	if err = r.storage.QueryRow(ctx, query, args...).Scan(&counts.Pending, &counts.Overdue); err != nil {
		r.logger.Error("erro ao contar empréstimos", zap.Error(err))
		return nil, err
	}
	return counts, nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

const equipmentTable = "equipments"

var equipmentColumns = []string{
	"id", "numero_patrimonio", "numero_serie", "marca", "modelo", "tipo_equipamento",
	"departamento_atual", "responsavel_atual", "termo_responsabilidade", "status",
	"created_at", "updated_at",
}

type EquipmentRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error)
	// FindByPatrimonio с forUpdate=true блокирует строку до конца транзакции.
	FindByPatrimonio(ctx context.Context, tx pgx.Tx, numeroPatrimonio string, forUpdate bool) (*entities.Equipment, error)
	List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error)
	Update(ctx context.Context, tx pgx.Tx, equipment *entities.Equipment) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, numeroPatrimonio, status string) error
	AttachTermo(ctx context.Context, tx pgx.Tx, id, encoded string) error
	Delete(ctx context.Context, tx pgx.Tx, id string) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage, logger: logger}
}

func (r *EquipmentRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	err := row.Scan(
		&e.ID, &e.NumeroPatrimonio, &e.NumeroSerie, &e.Marca, &e.Modelo, &e.TipoEquipamento,
		&e.DepartamentoAtual, &e.ResponsavelAtual, &e.TermoResponsabilidade, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// buildEquipmentListQuery: точные фильтры через AND, поиск - ILIKE через OR.
func buildEquipmentListQuery(filter entities.EquipmentFilter) sq.SelectBuilder {
	builder := psql.Select(equipmentColumns...).From(equipmentTable)

	if filter.Tipo != "" {
		builder = builder.Where(sq.Eq{"tipo_equipamento": filter.Tipo})
	}
	if filter.Departamento != "" {
		builder = builder.Where(sq.Eq{"departamento_atual": filter.Departamento})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		builder = builder.Where(ilikeAny(filter.Search, "numero_patrimonio", "numero_serie", "marca", "modelo"))
	}

	builder = builder.OrderBy("created_at ASC")
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	return builder
}

func (r *EquipmentRepository) Create(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := psql.Insert(equipmentTable).
		Columns(equipmentColumns...).
		Values(
			e.ID, e.NumeroPatrimonio, e.NumeroSerie, e.Marca, e.Modelo, e.TipoEquipamento,
			e.DepartamentoAtual, e.ResponsavelAtual, e.TermoResponsabilidade, e.Status,
			e.CreatedAt, e.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar insert de equipamento: %w", err)
	}

	if _, err = r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrConflict
		}
		r.logger.Error("erro ao inserir equipamento", zap.String("numero_patrimonio", e.NumeroPatrimonio), zap.Error(err))
		return err
	}
	return nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	query, args, err := psql.Select(equipmentColumns...).From(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) FindByPatrimonio(ctx context.Context, tx pgx.Tx, numeroPatrimonio string, forUpdate bool) (*entities.Equipment, error) {
	builder := psql.Select(equipmentColumns...).From(equipmentTable).Where(sq.Eq{"numero_patrimonio": numeroPatrimonio})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	return scanEquipment(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *EquipmentRepository) List(ctx context.Context, filter entities.EquipmentFilter) ([]entities.Equipment, error) {
	query, args, err := buildEquipmentListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("listando equipamentos", zap.String("query", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar equipamentos: %w", err)
	}
	defer rows.Close()

	equipments := make([]entities.Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		equipments = append(equipments, *e)
	}
	return equipments, rows.Err()
}

func (r *EquipmentRepository) Update(ctx context.Context, tx pgx.Tx, e *entities.Equipment) error {
	query, args, err := psql.Update(equipmentTable).SetMap(map[string]interface{}{
		"numero_patrimonio":  e.NumeroPatrimonio,
		"numero_serie":       e.NumeroSerie,
		"marca":              e.Marca,
		"modelo":             e.Modelo,
		"tipo_equipamento":   e.TipoEquipamento,
		"departamento_atual": e.DepartamentoAtual,
		"responsavel_atual":  e.ResponsavelAtual,
		"status":             e.Status,
		"updated_at":         e.UpdatedAt,
	}).Where(sq.Eq{"id": e.ID}).ToSql()
	if err != nil {
		return err
	}

	tag, err := r.getQuerier(tx).Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("erro ao atualizar equipamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, numeroPatrimonio, status string) error {
	query, args, err := psql.Update(equipmentTable).
		Set("status", status).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"numero_patrimonio": numeroPatrimonio}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.getQuerier(tx).Exec(ctx, query, args...)
	return err
}

func (r *EquipmentRepository) AttachTermo(ctx context.Context, tx pgx.Tx, id, encoded string) error {
	query, args, err := psql.Update(equipmentTable).
		Set("termo_responsabilidade", encoded).
		Set("updated_at", sq.Expr("NOW()")).
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

func (r *EquipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	query, args, err := psql.Delete(equipmentTable).Where(sq.Eq{"id": id}).ToSql()
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

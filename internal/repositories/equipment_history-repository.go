package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/entities"
)

const equipmentHistoryTable = "equipment_history"

var equipmentHistoryColumns = []string{"id", "equipment_id", "action", "description", "actor", "created_at"}

type EquipmentHistoryRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, entry *entities.EquipmentHistory) error
	FindByEquipmentID(ctx context.Context, equipmentID string, limit uint64) ([]entities.EquipmentHistory, error)
}

type EquipmentHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentHistoryRepository(storage *pgxpool.Pool) EquipmentHistoryRepositoryInterface {
	return &EquipmentHistoryRepository{storage: storage}
}

func (r *EquipmentHistoryRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func (r *EquipmentHistoryRepository) Create(ctx context.Context, tx pgx.Tx, h *entities.EquipmentHistory) error {
	query, args, err := psql.Insert(equipmentHistoryTable).
		Columns(equipmentHistoryColumns...).
		Values(h.ID, h.EquipmentID, h.Action, h.Description, h.User, h.Timestamp).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.getQuerier(tx).Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao gravar histórico do equipamento %s: %w", h.EquipmentID, err)
	}
	return nil
}

// seq - порядок вставки; created_at может совпадать у записей одной транзакции.
func buildHistoryQuery(equipmentID string, limit uint64) sq.SelectBuilder {
	return psql.Select(equipmentHistoryColumns...).
		From(equipmentHistoryTable).
		Where(sq.Eq{"equipment_id": equipmentID}).
		OrderBy("seq ASC").
		Limit(limit)
}

func (r *EquipmentHistoryRepository) FindByEquipmentID(ctx context.Context, equipmentID string, limit uint64) ([]entities.EquipmentHistory, error) {
	query, args, err := buildHistoryQuery(equipmentID, limit).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]entities.EquipmentHistory, 0)
	for rows.Next() {
		var h entities.EquipmentHistory
		if err := rows.Scan(&h.ID, &h.EquipmentID, &h.Action, &h.Description, &h.User, &h.Timestamp); err != nil {
			return nil, err
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

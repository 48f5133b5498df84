package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"fleet-system/internal/entities"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/types"
)

const (
	equipmentTable   = "equipments"
	equipmentFields  = "id, name, brand, model, vin, hours, mileage, status_code, created_at, updated_at"
	regulationTable  = "maintenance_regulations"
	regulationFields = "id, equipment_id, name, interval_hours, checklist"
)

// allowedEquipmentFilters - белый список для фильтрации (защита от SQL Injection)
var allowedEquipmentFilters = map[string]string{
	"status_code": "status_code",
	"brand":       "brand",
	"model":       "model",
}

var allowedEquipmentSortFields = map[string]bool{
	"id":         true,
	"name":       true,
	"hours":      true,
	"created_at": true,
	"updated_at": true,
}

type EquipmentRepositoryInterface interface {
	GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error)
	FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error)
	CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error)
	UpdateEquipment(ctx context.Context, id uint64, eq entities.Equipment) error
	// UpdateStatusCode пишет вычисленный статус. Единственный легальный
	// писатель этого поля - резолвер статуса техники.
	UpdateStatusCode(ctx context.Context, id uint64, statusCode string) error
	UpdateCounters(ctx context.Context, id uint64, hours float64, mileage *float64) error
	DeleteEquipment(ctx context.Context, id uint64) error
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEquipmentRepository(storage *pgxpool.Pool, logger *zap.Logger) EquipmentRepositoryInterface {
	return &EquipmentRepository{
		storage: storage,
		logger:  logger,
	}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var eq entities.Equipment
	err := row.Scan(
		&eq.ID,
		&eq.Name,
		&eq.Brand,
		&eq.Model,
		&eq.VIN,
		&eq.Hours,
		&eq.Mileage,
		&eq.StatusCode,
		&eq.CreatedAt,
		&eq.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEquipmentNotFound
		}
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentRepository) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	builder := sq.Select(equipmentFields).
		From(equipmentTable).
		PlaceholderFormat(sq.Dollar)

	countBuilder := sq.Select("COUNT(*)").
		From(equipmentTable).
		PlaceholderFormat(sq.Dollar)

	for key, value := range filter.Filter {
		column, ok := allowedEquipmentFilters[key]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{column: value})
		countBuilder = countBuilder.Where(sq.Eq{column: value})
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		cond := sq.Or{
			sq.ILike{"name": like},
			sq.ILike{"vin": like},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	orderBy := "created_at DESC"
	for field, dir := range filter.Sort {
		if !allowedEquipmentSortFields[field] {
			continue
		}
		if dir != "asc" && dir != "desc" {
			dir = "desc"
		}
		orderBy = fmt.Sprintf("%s %s", field, dir)
		break
	}
	builder = builder.OrderBy(orderBy)

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var list []entities.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *eq)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *EquipmentRepository) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", equipmentFields, equipmentTable)
	eq, err := scanEquipment(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	regs, err := r.getRegulations(ctx, id)
	if err != nil {
		return nil, err
	}
	eq.Regulations = regs

	return eq, nil
}

func (r *EquipmentRepository) getRegulations(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRegulation, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY id", regulationFields, regulationTable)

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []entities.MaintenanceRegulation
	for rows.Next() {
		var reg entities.MaintenanceRegulation
		if err := rows.Scan(&reg.ID, &reg.EquipmentID, &reg.Name, &reg.IntervalHours, &reg.Checklist); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func insertRegulationsInTx(ctx context.Context, q querier, equipmentID uint64, regs []entities.MaintenanceRegulation) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (equipment_id, name, interval_hours, checklist)
        VALUES ($1, $2, $3, $4)
    `, regulationTable)

	for _, reg := range regs {
		if _, err := q.Exec(ctx, query, equipmentID, reg.Name, reg.IntervalHours, reg.Checklist); err != nil {
			return err
		}
	}
	return nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO %s (name, brand, model, vin, hours, mileage, status_code)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, equipmentTable)

	var id uint64
	err = tx.QueryRow(ctx, query,
		eq.Name,
		eq.Brand,
		eq.Model,
		eq.VIN,
		eq.Hours,
		eq.Mileage,
		eq.StatusCode,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := insertRegulationsInTx(ctx, tx, id, eq.Regulations); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, id uint64, eq entities.Equipment) error {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        UPDATE %s
        SET name = $1, brand = $2, model = $3, vin = $4, hours = $5, mileage = $6, updated_at = CURRENT_TIMESTAMP
        WHERE id = $7
    `, equipmentTable)

	result, err := tx.Exec(ctx, query,
		eq.Name,
		eq.Brand,
		eq.Model,
		eq.VIN,
		eq.Hours,
		eq.Mileage,
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}

	// nil - регламенты не трогаем, пустой срез - очищаем.
	if eq.Regulations != nil {
		deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE equipment_id = $1", regulationTable)
		if _, err := tx.Exec(ctx, deleteQuery, id); err != nil {
			return err
		}
		if err := insertRegulationsInTx(ctx, tx, id, eq.Regulations); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *EquipmentRepository) UpdateStatusCode(ctx context.Context, id uint64, statusCode string) error {
	query := fmt.Sprintf(`
        UPDATE %s SET status_code = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2
    `, equipmentTable)

	result, err := r.storage.Exec(ctx, query, statusCode, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) UpdateCounters(ctx context.Context, id uint64, hours float64, mileage *float64) error {
	query := fmt.Sprintf(`
        UPDATE %s SET hours = $1, mileage = COALESCE($2, mileage), updated_at = CURRENT_TIMESTAMP WHERE id = $3
    `, equipmentTable)

	result, err := r.storage.Exec(ctx, query, hours, mileage, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, id uint64) error {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE equipment_id = $1", regulationTable), id); err != nil {
		return err
	}

	result, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", equipmentTable), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrEquipmentNotFound
	}
	return tx.Commit(ctx)
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleet-system/internal/entities"
	apperrors "fleet-system/pkg/errors"
)

const (
	plannedMaintenanceTable  = "planned_maintenances"
	plannedMaintenanceFields = "id, equipment_id, maintenance_type, scheduled_date, status_code, created_at, updated_at"
)

type PlannedMaintenanceRepositoryInterface interface {
	// GetAll отдаёт полную коллекцию для резолвера статуса техники.
	GetAll(ctx context.Context) ([]entities.PlannedMaintenance, error)
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.PlannedMaintenance, error)
	Find(ctx context.Context, id uint64) (*entities.PlannedMaintenance, error)
	Create(ctx context.Context, pm entities.PlannedMaintenance) (uint64, error)
	Update(ctx context.Context, id uint64, pm entities.PlannedMaintenance) error
	Delete(ctx context.Context, id uint64) error
}

type PlannedMaintenanceRepository struct {
	storage *pgxpool.Pool
}

func NewPlannedMaintenanceRepository(storage *pgxpool.Pool) PlannedMaintenanceRepositoryInterface {
	return &PlannedMaintenanceRepository{storage: storage}
}

func scanPlannedMaintenance(row pgx.Row) (*entities.PlannedMaintenance, error) {
	var pm entities.PlannedMaintenance
	err := row.Scan(
		&pm.ID,
		&pm.EquipmentID,
		&pm.MaintenanceType,
		&pm.ScheduledDate,
		&pm.StatusCode,
		&pm.CreatedAt,
		&pm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &pm, nil
}

func (r *PlannedMaintenanceRepository) queryList(ctx context.Context, query string, args ...any) ([]entities.PlannedMaintenance, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.PlannedMaintenance
	for rows.Next() {
		pm, err := scanPlannedMaintenance(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *pm)
	}
	return list, rows.Err()
}

func (r *PlannedMaintenanceRepository) GetAll(ctx context.Context) ([]entities.PlannedMaintenance, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", plannedMaintenanceFields, plannedMaintenanceTable)
	return r.queryList(ctx, query)
}

func (r *PlannedMaintenanceRepository) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.PlannedMaintenance, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY scheduled_date", plannedMaintenanceFields, plannedMaintenanceTable)
	return r.queryList(ctx, query, equipmentID)
}

func (r *PlannedMaintenanceRepository) Find(ctx context.Context, id uint64) (*entities.PlannedMaintenance, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", plannedMaintenanceFields, plannedMaintenanceTable)
	return scanPlannedMaintenance(r.storage.QueryRow(ctx, query, id))
}

func (r *PlannedMaintenanceRepository) Create(ctx context.Context, pm entities.PlannedMaintenance) (uint64, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (equipment_id, maintenance_type, scheduled_date, status_code)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, plannedMaintenanceTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query, pm.EquipmentID, pm.MaintenanceType, pm.ScheduledDate, pm.StatusCode).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PlannedMaintenanceRepository) Update(ctx context.Context, id uint64, pm entities.PlannedMaintenance) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET maintenance_type = $1, scheduled_date = $2, status_code = $3, updated_at = CURRENT_TIMESTAMP
        WHERE id = $4
    `, plannedMaintenanceTable)

	result, err := r.storage.Exec(ctx, query, pm.MaintenanceType, pm.ScheduledDate, pm.StatusCode, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PlannedMaintenanceRepository) Delete(ctx context.Context, id uint64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", plannedMaintenanceTable)

	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

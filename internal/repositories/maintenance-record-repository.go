package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"fleet-system/internal/entities"
)

const (
	maintenanceRecordTable  = "maintenance_records"
	maintenanceRecordFields = "id, equipment_id, breakdown_id, description, resolution, hours, mileage, performed_at, created_at, updated_at"
)

type MaintenanceRecordRepositoryInterface interface {
	// Create дописывает запись в журнал обслуживания. Журнал только растёт.
	Create(ctx context.Context, rec entities.MaintenanceRecord) (uint64, error)
	GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error)
}

type MaintenanceRecordRepository struct {
	storage *pgxpool.Pool
}

func NewMaintenanceRecordRepository(storage *pgxpool.Pool) MaintenanceRecordRepositoryInterface {
	return &MaintenanceRecordRepository{storage: storage}
}

func (r *MaintenanceRecordRepository) Create(ctx context.Context, rec entities.MaintenanceRecord) (uint64, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (equipment_id, breakdown_id, description, resolution, hours, mileage, performed_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `, maintenanceRecordTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		rec.EquipmentID,
		rec.BreakdownID,
		rec.Description,
		rec.Resolution,
		rec.Hours,
		rec.Mileage,
		rec.PerformedAt,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *MaintenanceRecordRepository) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM %s WHERE equipment_id = $1 ORDER BY performed_at DESC
    `, maintenanceRecordFields, maintenanceRecordTable)

	rows, err := r.storage.Query(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.MaintenanceRecord
	for rows.Next() {
		var rec entities.MaintenanceRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.EquipmentID,
			&rec.BreakdownID,
			&rec.Description,
			&rec.Resolution,
			&rec.Hours,
			&rec.Mileage,
			&rec.PerformedAt,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

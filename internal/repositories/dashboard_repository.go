package repositories

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"fleet-system/pkg/constants"
)

type DashboardRepositoryInterface interface {
	CountEquipmentByStatus(ctx context.Context) (map[string]int64, error)
	CountOpenBreakdownsBySeverity(ctx context.Context) (map[string]int64, error)
	CountOpenBreakdowns(ctx context.Context) (int64, error)
	CountOverduePlannedMaintenance(ctx context.Context) (int64, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
}

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage}
}

func (r *DashboardRepository) countGrouped(ctx context.Context, builder sq.SelectBuilder) (map[string]int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		result[key] = count
	}
	return result, rows.Err()
}

func (r *DashboardRepository) CountEquipmentByStatus(ctx context.Context) (map[string]int64, error) {
	builder := sq.Select("status_code", "COUNT(*)").
		From(equipmentTable).
		GroupBy("status_code").
		PlaceholderFormat(sq.Dollar)
	return r.countGrouped(ctx, builder)
}

func (r *DashboardRepository) CountOpenBreakdownsBySeverity(ctx context.Context) (map[string]int64, error) {
	builder := sq.Select("severity", "COUNT(*)").
		From(breakdownTable).
		Where(sq.NotEq{"status_code": constants.BreakdownStatusFixed}).
		GroupBy("severity").
		PlaceholderFormat(sq.Dollar)
	return r.countGrouped(ctx, builder)
}

func (r *DashboardRepository) CountOpenBreakdowns(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(breakdownTable).
		Where(sq.NotEq{"status_code": constants.BreakdownStatusFixed}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DashboardRepository) CountOverduePlannedMaintenance(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").
		From(plannedMaintenanceTable).
		Where(sq.Eq{"status_code": constants.MaintenanceStatusPlanned}).
		Where(sq.Expr("scheduled_date < CURRENT_DATE")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

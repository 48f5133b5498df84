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
	breakdownTable  = "breakdowns"
	breakdownFields = `id, act_number, equipment_id, node, part_name, description, severity, status_code,
		date_of_breakdown, fixed_date, hours_at_breakdown, mileage_at_breakdown, hours_at_fix, mileage_at_fix,
		reporter_name, notes, created_at, updated_at`
)

var allowedBreakdownFilters = map[string]string{
	"equipment_id": "equipment_id",
	"status_code":  "status_code",
	"severity":     "severity",
}

var allowedBreakdownSortFields = map[string]bool{
	"id":                true,
	"act_number":        true,
	"date_of_breakdown": true,
	"created_at":        true,
	"severity":          true,
}

type BreakdownRepositoryInterface interface {
	GetBreakdowns(ctx context.Context, filter types.Filter) ([]entities.Breakdown, uint64, error)
	// GetAllBreakdowns отдаёт полную коллекцию для резолвера статуса техники.
	GetAllBreakdowns(ctx context.Context) ([]entities.Breakdown, error)
	FindBreakdown(ctx context.Context, id uint64) (*entities.Breakdown, error)
	CreateBreakdown(ctx context.Context, b entities.Breakdown) (uint64, error)
	UpdateBreakdown(ctx context.Context, id uint64, b entities.Breakdown) error
	// NextActSequence выдаёт следующий номер акта. Номер берётся из
	// отдельной монотонной последовательности, а не из размера коллекции,
	// поэтому удаление записей не приводит к повторному использованию номеров.
	NextActSequence(ctx context.Context) (uint64, error)
}

type BreakdownRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewBreakdownRepository(storage *pgxpool.Pool, logger *zap.Logger) BreakdownRepositoryInterface {
	return &BreakdownRepository{
		storage: storage,
		logger:  logger,
	}
}

func scanBreakdown(row pgx.Row) (*entities.Breakdown, error) {
	var b entities.Breakdown
	err := row.Scan(
		&b.ID,
		&b.ActNumber,
		&b.EquipmentID,
		&b.Node,
		&b.PartName,
		&b.Description,
		&b.Severity,
		&b.StatusCode,
		&b.DateOfBreakdown,
		&b.FixedDate,
		&b.HoursAtBreakdown,
		&b.MileageAtBreakdown,
		&b.HoursAtFix,
		&b.MileageAtFix,
		&b.ReporterName,
		&b.Notes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBreakdownNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BreakdownRepository) GetBreakdowns(ctx context.Context, filter types.Filter) ([]entities.Breakdown, uint64, error) {
	builder := sq.Select(breakdownFields).
		From(breakdownTable).
		PlaceholderFormat(sq.Dollar)

	countBuilder := sq.Select("COUNT(*)").
		From(breakdownTable).
		PlaceholderFormat(sq.Dollar)

	for key, value := range filter.Filter {
		column, ok := allowedBreakdownFilters[key]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{column: value})
		countBuilder = countBuilder.Where(sq.Eq{column: value})
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		cond := sq.Or{
			sq.ILike{"act_number": like},
			sq.ILike{"part_name": like},
			sq.ILike{"description": like},
		}
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	orderBy := "created_at DESC"
	for field, dir := range filter.Sort {
		if !allowedBreakdownSortFields[field] {
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

	var list []entities.Breakdown
	for rows.Next() {
		b, err := scanBreakdown(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *b)
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

func (r *BreakdownRepository) GetAllBreakdowns(ctx context.Context) ([]entities.Breakdown, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", breakdownFields, breakdownTable)

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []entities.Breakdown
	for rows.Next() {
		b, err := scanBreakdown(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *b)
	}
	return list, rows.Err()
}

func (r *BreakdownRepository) FindBreakdown(ctx context.Context, id uint64) (*entities.Breakdown, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", breakdownFields, breakdownTable)
	return scanBreakdown(r.storage.QueryRow(ctx, query, id))
}

func (r *BreakdownRepository) CreateBreakdown(ctx context.Context, b entities.Breakdown) (uint64, error) {
	query := fmt.Sprintf(`
        INSERT INTO %s (act_number, equipment_id, node, part_name, description, severity, status_code,
            date_of_breakdown, hours_at_breakdown, mileage_at_breakdown, reporter_name)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `, breakdownTable)

	var id uint64
	err := r.storage.QueryRow(ctx, query,
		b.ActNumber,
		b.EquipmentID,
		b.Node,
		b.PartName,
		b.Description,
		b.Severity,
		b.StatusCode,
		b.DateOfBreakdown,
		b.HoursAtBreakdown,
		b.MileageAtBreakdown,
		b.ReporterName,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BreakdownRepository) UpdateBreakdown(ctx context.Context, id uint64, b entities.Breakdown) error {
	query := fmt.Sprintf(`
        UPDATE %s
        SET status_code = $1, fixed_date = $2, hours_at_fix = $3, mileage_at_fix = $4, notes = $5,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $6
    `, breakdownTable)

	result, err := r.storage.Exec(ctx, query,
		b.StatusCode,
		b.FixedDate,
		b.HoursAtFix,
		b.MileageAtFix,
		b.Notes,
		id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrBreakdownNotFound
	}
	return nil
}

func (r *BreakdownRepository) NextActSequence(ctx context.Context) (uint64, error) {
	var n uint64
	if err := r.storage.QueryRow(ctx, "SELECT nextval('breakdown_act_seq')").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

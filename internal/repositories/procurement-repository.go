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

	"fleet-system/internal/entities"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/types"
)

const (
	procurementTable   = "procurement_requests"
	procurementFields  = "id, breakdown_id, title, status_code, cost, completed_at, created_at, updated_at"
	procurementItems   = "procurement_items"
	procurementHistory = "procurement_status_changes"
)

var allowedProcurementFilters = map[string]string{
	"status_code":  "status_code",
	"breakdown_id": "breakdown_id",
}

type ProcurementRepositoryInterface interface {
	GetRequests(ctx context.Context, filter types.Filter) ([]entities.ProcurementRequest, uint64, error)
	FindRequest(ctx context.Context, id uint64) (*entities.ProcurementRequest, error)
	// CreateRequest сохраняет заявку вместе с позициями и первой записью
	// журнала статусов в одной транзакции.
	CreateRequest(ctx context.Context, req entities.ProcurementRequest, initial entities.ProcurementStatusChange) (uint64, error)
	// UpdateStatus пишет новый статус и запись журнала атомарно.
	UpdateStatus(ctx context.Context, id uint64, statusCode string, completedAt *time.Time, change entities.ProcurementStatusChange) error
	UpdateFields(ctx context.Context, id uint64, req entities.ProcurementRequest) error
	GetHistory(ctx context.Context, requestID uint64) ([]entities.ProcurementStatusChange, error)
}

type ProcurementRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewProcurementRepository(storage *pgxpool.Pool, logger *zap.Logger) ProcurementRepositoryInterface {
	return &ProcurementRepository{
		storage: storage,
		logger:  logger,
	}
}

func scanProcurement(row pgx.Row) (*entities.ProcurementRequest, error) {
	var req entities.ProcurementRequest
	err := row.Scan(
		&req.ID,
		&req.BreakdownID,
		&req.Title,
		&req.StatusCode,
		&req.Cost,
		&req.CompletedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProcurementNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *ProcurementRepository) GetRequests(ctx context.Context, filter types.Filter) ([]entities.ProcurementRequest, uint64, error) {
	builder := sq.Select(procurementFields).
		From(procurementTable).
		PlaceholderFormat(sq.Dollar).
		OrderBy("created_at DESC")

	countBuilder := sq.Select("COUNT(*)").
		From(procurementTable).
		PlaceholderFormat(sq.Dollar)

	for key, value := range filter.Filter {
		column, ok := allowedProcurementFilters[key]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{column: value})
		countBuilder = countBuilder.Where(sq.Eq{column: value})
	}

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

	var list []entities.ProcurementRequest
	for rows.Next() {
		req, err := scanProcurement(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *req)
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

func (r *ProcurementRepository) FindRequest(ctx context.Context, id uint64) (*entities.ProcurementRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", procurementFields, procurementTable)
	req, err := scanProcurement(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Items = items

	history, err := r.GetHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	req.History = history

	return req, nil
}

func (r *ProcurementRepository) getItems(ctx context.Context, requestID uint64) ([]entities.ProcurementItem, error) {
	query := fmt.Sprintf(`
        SELECT id, request_id, part_name, quantity, price FROM %s WHERE request_id = $1 ORDER BY id
    `, procurementItems)

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.ProcurementItem
	for rows.Next() {
		var item entities.ProcurementItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.PartName, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ProcurementRepository) GetHistory(ctx context.Context, requestID uint64) ([]entities.ProcurementStatusChange, error) {
	query := fmt.Sprintf(`
        SELECT id, request_id, status_code, actor, tx_id, changed_at FROM %s WHERE request_id = $1 ORDER BY changed_at, id
    `, procurementHistory)

	rows, err := r.storage.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []entities.ProcurementStatusChange
	for rows.Next() {
		var change entities.ProcurementStatusChange
		if err := rows.Scan(&change.ID, &change.RequestID, &change.StatusCode, &change.Actor, &change.TxID, &change.ChangedAt); err != nil {
			return nil, err
		}
		history = append(history, change)
	}
	return history, rows.Err()
}

func (r *ProcurementRepository) CreateRequest(ctx context.Context, req entities.ProcurementRequest, initial entities.ProcurementStatusChange) (newID uint64, err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        INSERT INTO %s (breakdown_id, title, status_code, cost)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, procurementTable)

	if err = tx.QueryRow(ctx, query, req.BreakdownID, req.Title, req.StatusCode, req.Cost).Scan(&newID); err != nil {
		return 0, err
	}

	for _, item := range req.Items {
		itemQuery := fmt.Sprintf(`
            INSERT INTO %s (request_id, part_name, quantity, price) VALUES ($1, $2, $3, $4)
        `, procurementItems)
		if _, err = tx.Exec(ctx, itemQuery, newID, item.PartName, item.Quantity, item.Price); err != nil {
			return 0, err
		}
	}

	if err = appendHistoryInTx(ctx, tx, newID, initial); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка коммита транзакции: %w", err)
	}
	return newID, nil
}

func appendHistoryInTx(ctx context.Context, q querier, requestID uint64, change entities.ProcurementStatusChange) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (request_id, status_code, actor, tx_id, changed_at)
        VALUES ($1, $2, $3, $4, $5)
    `, procurementHistory)
	_, err := q.Exec(ctx, query, requestID, change.StatusCode, change.Actor, change.TxID, change.ChangedAt)
	return err
}

func (r *ProcurementRepository) UpdateStatus(ctx context.Context, id uint64, statusCode string, completedAt *time.Time, change entities.ProcurementStatusChange) (err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        UPDATE %s
        SET status_code = $1, completed_at = COALESCE($2, completed_at), updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
    `, procurementTable)

	result, err := tx.Exec(ctx, query, statusCode, completedAt, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrProcurementNotFound
	}

	if err = appendHistoryInTx(ctx, tx, id, change); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ProcurementRepository) UpdateFields(ctx context.Context, id uint64, req entities.ProcurementRequest) (err error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
        UPDATE %s SET title = $1, cost = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3
    `, procurementTable)

	result, err := tx.Exec(ctx, query, req.Title, req.Cost, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrProcurementNotFound
	}

	if req.Items != nil {
		if _, err = tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE request_id = $1", procurementItems), id); err != nil {
			return err
		}
		for _, item := range req.Items {
			itemQuery := fmt.Sprintf(`
                INSERT INTO %s (request_id, part_name, quantity, price) VALUES ($1, $2, $3, $4)
            `, procurementItems)
			if _, err = tx.Exec(ctx, itemQuery, id, item.PartName, item.Quantity, item.Price); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

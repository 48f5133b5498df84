package services

// Фейки репозиториев в памяти. Сервисы живут за интерфейсами, поэтому тесты
// ядра не требуют БД: вся логика статусов и синхронизации проверяется здесь.

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"fleet-system/internal/entities"
	apperrors "fleet-system/pkg/errors"
	"fleet-system/pkg/types"
)

func newTestLogger() *zap.Logger { return zap.NewNop() }

type fakeEquipmentRepo struct {
	mu         sync.Mutex
	equipments map[uint64]entities.Equipment
	nextID     uint64
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{equipments: make(map[uint64]entities.Equipment)}
}

func (r *fakeEquipmentRepo) add(eq entities.Equipment) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	eq.ID = r.nextID
	r.equipments[eq.ID] = eq
	return eq.ID
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.Equipment, 0, len(r.equipments))
	for _, eq := range r.equipments {
		list = append(list, eq)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.equipments[id]
	if !ok {
		return nil, apperrors.ErrEquipmentNotFound
	}
	return &eq, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, eq entities.Equipment) (uint64, error) {
	return r.add(eq), nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, eq entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.equipments[id]
	if !ok {
		return apperrors.ErrEquipmentNotFound
	}
	eq.ID = id
	// Как в продовом репозитории: nil не трогает регламенты.
	if eq.Regulations == nil {
		eq.Regulations = old.Regulations
	}
	r.equipments[id] = eq
	return nil
}

func (r *fakeEquipmentRepo) UpdateStatusCode(ctx context.Context, id uint64, statusCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.equipments[id]
	if !ok {
		return apperrors.ErrEquipmentNotFound
	}
	eq.StatusCode = statusCode
	r.equipments[id] = eq
	return nil
}

func (r *fakeEquipmentRepo) UpdateCounters(ctx context.Context, id uint64, hours float64, mileage *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	eq, ok := r.equipments[id]
	if !ok {
		return apperrors.ErrEquipmentNotFound
	}
	eq.Hours = hours
	if mileage != nil {
		eq.Mileage = mileage
	}
	r.equipments[id] = eq
	return nil
}

func (r *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.equipments[id]; !ok {
		return apperrors.ErrEquipmentNotFound
	}
	delete(r.equipments, id)
	return nil
}

func (r *fakeEquipmentRepo) statusOf(id uint64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.equipments[id].StatusCode
}

type fakeBreakdownRepo struct {
	mu         sync.Mutex
	breakdowns map[uint64]entities.Breakdown
	nextID     uint64
	actSeq     uint64
}

func newFakeBreakdownRepo() *fakeBreakdownRepo {
	return &fakeBreakdownRepo{breakdowns: make(map[uint64]entities.Breakdown)}
}

func (r *fakeBreakdownRepo) GetBreakdowns(ctx context.Context, filter types.Filter) ([]entities.Breakdown, uint64, error) {
	list, err := r.GetAllBreakdowns(ctx)
	return list, uint64(len(list)), err
}

func (r *fakeBreakdownRepo) GetAllBreakdowns(ctx context.Context) ([]entities.Breakdown, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.Breakdown, 0, len(r.breakdowns))
	for _, b := range r.breakdowns {
		list = append(list, b)
	}
	return list, nil
}

func (r *fakeBreakdownRepo) FindBreakdown(ctx context.Context, id uint64) (*entities.Breakdown, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.breakdowns[id]
	if !ok {
		return nil, apperrors.ErrBreakdownNotFound
	}
	return &b, nil
}

func (r *fakeBreakdownRepo) CreateBreakdown(ctx context.Context, b entities.Breakdown) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	r.breakdowns[b.ID] = b
	return b.ID, nil
}

func (r *fakeBreakdownRepo) UpdateBreakdown(ctx context.Context, id uint64, b entities.Breakdown) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.breakdowns[id]; !ok {
		return apperrors.ErrBreakdownNotFound
	}
	b.ID = id
	r.breakdowns[id] = b
	return nil
}

func (r *fakeBreakdownRepo) NextActSequence(ctx context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actSeq++
	return r.actSeq, nil
}

func (r *fakeBreakdownRepo) delete(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.breakdowns, id)
}

type fakePlannedRepo struct {
	mu      sync.Mutex
	planned map[uint64]entities.PlannedMaintenance
	nextID  uint64
}

func newFakePlannedRepo() *fakePlannedRepo {
	return &fakePlannedRepo{planned: make(map[uint64]entities.PlannedMaintenance)}
}

func (r *fakePlannedRepo) GetAll(ctx context.Context) ([]entities.PlannedMaintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.PlannedMaintenance, 0, len(r.planned))
	for _, pm := range r.planned {
		list = append(list, pm)
	}
	return list, nil
}

func (r *fakePlannedRepo) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.PlannedMaintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []entities.PlannedMaintenance
	for _, pm := range r.planned {
		if pm.EquipmentID == equipmentID {
			list = append(list, pm)
		}
	}
	return list, nil
}

func (r *fakePlannedRepo) Find(ctx context.Context, id uint64) (*entities.PlannedMaintenance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pm, ok := r.planned[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &pm, nil
}

func (r *fakePlannedRepo) Create(ctx context.Context, pm entities.PlannedMaintenance) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	pm.ID = r.nextID
	r.planned[pm.ID] = pm
	return pm.ID, nil
}

func (r *fakePlannedRepo) Update(ctx context.Context, id uint64, pm entities.PlannedMaintenance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.planned[id]; !ok {
		return apperrors.ErrNotFound
	}
	pm.ID = id
	r.planned[id] = pm
	return nil
}

func (r *fakePlannedRepo) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.planned[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.planned, id)
	return nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records []entities.MaintenanceRecord
	nextID  uint64
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{}
}

func (r *fakeRecordRepo) Create(ctx context.Context, rec entities.MaintenanceRecord) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	r.records = append(r.records, rec)
	return rec.ID, nil
}

func (r *fakeRecordRepo) GetByEquipment(ctx context.Context, equipmentID uint64) ([]entities.MaintenanceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []entities.MaintenanceRecord
	for _, rec := range r.records {
		if rec.EquipmentID == equipmentID {
			list = append(list, rec)
		}
	}
	return list, nil
}

func (r *fakeRecordRepo) all() []entities.MaintenanceRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.MaintenanceRecord, len(r.records))
	copy(out, r.records)
	return out
}

type fakeProcurementRepo struct {
	mu       sync.Mutex
	requests map[uint64]entities.ProcurementRequest
	history  map[uint64][]entities.ProcurementStatusChange
	nextID   uint64
}

func newFakeProcurementRepo() *fakeProcurementRepo {
	return &fakeProcurementRepo{
		requests: make(map[uint64]entities.ProcurementRequest),
		history:  make(map[uint64][]entities.ProcurementStatusChange),
	}
}

func (r *fakeProcurementRepo) GetRequests(ctx context.Context, filter types.Filter) ([]entities.ProcurementRequest, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entities.ProcurementRequest, 0, len(r.requests))
	for _, req := range r.requests {
		list = append(list, req)
	}
	return list, uint64(len(list)), nil
}

func (r *fakeProcurementRepo) FindRequest(ctx context.Context, id uint64) (*entities.ProcurementRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, apperrors.ErrProcurementNotFound
	}
	req.History = append([]entities.ProcurementStatusChange(nil), r.history[id]...)
	return &req, nil
}

func (r *fakeProcurementRepo) CreateRequest(ctx context.Context, req entities.ProcurementRequest, initial entities.ProcurementStatusChange) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	req.ID = r.nextID
	r.requests[req.ID] = req
	initial.RequestID = req.ID
	r.history[req.ID] = append(r.history[req.ID], initial)
	return req.ID, nil
}

func (r *fakeProcurementRepo) UpdateStatus(ctx context.Context, id uint64, statusCode string, completedAt *time.Time, change entities.ProcurementStatusChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return apperrors.ErrProcurementNotFound
	}
	req.StatusCode = statusCode
	// Дата завершения ставится один раз и не перезаписывается.
	if completedAt != nil && req.CompletedAt == nil {
		req.CompletedAt = completedAt
	}
	r.requests[id] = req
	change.RequestID = id
	r.history[id] = append(r.history[id], change)
	return nil
}

func (r *fakeProcurementRepo) UpdateFields(ctx context.Context, id uint64, req entities.ProcurementRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.requests[id]
	if !ok {
		return apperrors.ErrProcurementNotFound
	}
	stored.Title = req.Title
	stored.Cost = req.Cost
	stored.Items = req.Items
	r.requests[id] = stored
	return nil
}

func (r *fakeProcurementRepo) GetHistory(ctx context.Context, requestID uint64) ([]entities.ProcurementStatusChange, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.ProcurementStatusChange(nil), r.history[requestID]...), nil
}

// testEnv собирает ядро целиком: резолвер, поломки, снабжение - на фейках,
// без шины и без БД.
type testEnv struct {
	equipmentRepo   *fakeEquipmentRepo
	breakdownRepo   *fakeBreakdownRepo
	plannedRepo     *fakePlannedRepo
	recordRepo      *fakeRecordRepo
	procurementRepo *fakeProcurementRepo

	resolver    StatusResolverServiceInterface
	breakdowns  BreakdownServiceInterface
	procurement ProcurementServiceInterface
}

func newTestEnv() *testEnv {
	env := &testEnv{
		equipmentRepo:   newFakeEquipmentRepo(),
		breakdownRepo:   newFakeBreakdownRepo(),
		plannedRepo:     newFakePlannedRepo(),
		recordRepo:      newFakeRecordRepo(),
		procurementRepo: newFakeProcurementRepo(),
	}

	logger := newTestLogger()
	env.resolver = NewStatusResolverService(env.equipmentRepo, env.breakdownRepo, env.plannedRepo, logger)
	env.breakdowns = NewBreakdownService(
		env.breakdownRepo, env.equipmentRepo, env.recordRepo,
		env.resolver, PermissiveTransitionPolicy, nil, logger,
	)
	env.procurement = NewProcurementService(
		env.procurementRepo, env.breakdowns, PermissiveTransitionPolicy, nil, logger,
	)
	return env
}

func (env *testEnv) addEquipment(name string, hours float64) uint64 {
	return env.equipmentRepo.add(entities.Equipment{
		Name:       name,
		StatusCode: "ACTIVE",
		Hours:      hours,
	})
}

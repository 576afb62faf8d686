package services

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-sql/civil"
	"github.com/jackc/pgx/v5"

	"ppe-tracker/internal/entities"
	"ppe-tracker/internal/repositories"
	apperrors "ppe-tracker/pkg/errors"
	"ppe-tracker/pkg/eventbus"
	"ppe-tracker/pkg/types"
)

func day(y int, m time.Month, d int) civil.Date { return civil.Date{Year: y, Month: m, Day: d} }

func dayPtr(y int, m time.Month, d int) *civil.Date {
	v := day(y, m, d)
	return &v
}

func fixedNow(t time.Time) func() time.Time { return func() time.Time { return t } }

type fakeEquipmentRepo struct {
	mu      sync.Mutex
	items   map[uint64]entities.Equipment
	nextID  uint64
	byType  []types.DashboardCountByGroup
	listErr error
}

func newFakeEquipmentRepo(items ...entities.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{items: make(map[uint64]entities.Equipment)}
	for _, e := range items {
		r.items[e.ID] = e
		if e.ID > r.nextID {
			r.nextID = e.ID
		}
	}
	return r
}

func (r *fakeEquipmentRepo) sorted() []entities.Equipment {
	out := make([]entities.Equipment, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeEquipmentRepo) ListAll(ctx context.Context) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(), nil
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter) ([]entities.Equipment, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.sorted()
	return list, uint64(len(list)), nil
}

func (r *fakeEquipmentRepo) FindByID(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) ExistsByCustomIdentifier(ctx context.Context, customIdentifier string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.items {
		if e.CustomIdentifier == customIdentifier {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEquipmentRepo) Create(ctx context.Context, e entities.Equipment) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.CustomIdentifier == e.CustomIdentifier {
			return 0, apperrors.ErrConflict
		}
	}
	r.nextID++
	e.ID = r.nextID
	r.items[e.ID] = e
	return e.ID, nil
}

func (r *fakeEquipmentRepo) Update(ctx context.Context, tx pgx.Tx, id uint64, e entities.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	e.ID = id
	r.items[id] = e
	return nil
}

func (r *fakeEquipmentRepo) Delete(ctx context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeEquipmentRepo) CountByType(ctx context.Context) ([]types.DashboardCountByGroup, error) {
	return r.byType, nil
}

type fakeInspectionRepo struct {
	mu     sync.Mutex
	items  []entities.Inspection
	nextID uint64
}

func (r *fakeInspectionRepo) ListForEquipment(ctx context.Context, equipmentID uint64) ([]entities.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Inspection
	for _, i := range r.items {
		if i.EquipmentID == equipmentID {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].InspectionDate.After(out[b].InspectionDate) })
	return out, nil
}

func (r *fakeInspectionRepo) GetInspections(ctx context.Context, filter types.Filter) ([]entities.Inspection, uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entities.Inspection(nil), r.items...), uint64(len(r.items)), nil
}

func (r *fakeInspectionRepo) FindByID(ctx context.Context, id uint64) (*entities.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.items {
		if i.ID == id {
			return &i, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeInspectionRepo) Create(ctx context.Context, tx pgx.Tx, i entities.Inspection) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	i.ID = r.nextID
	r.items = append(r.items, i)
	return i.ID, nil
}

func (r *fakeInspectionRepo) LatestDates(ctx context.Context) (map[uint64]civil.Date, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uint64]civil.Date)
	for _, i := range r.items {
		if cur, ok := out[i.EquipmentID]; !ok || i.InspectionDate.After(cur) {
			out[i.EquipmentID] = i.InspectionDate
		}
	}
	return out, nil
}

func (r *fakeInspectionRepo) LatestDateFor(ctx context.Context, equipmentID uint64) (*civil.Date, error) {
	latest, _ := r.LatestDates(ctx)
	d, ok := latest[equipmentID]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeInspectionRepo) Recent(ctx context.Context, limit uint64) ([]entities.Inspection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]entities.Inspection(nil), r.items...)
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeEquipmentTypeRepo struct {
	items map[uint64]entities.EquipmentType
}

func newFakeEquipmentTypeRepo(names ...string) *fakeEquipmentTypeRepo {
	r := &fakeEquipmentTypeRepo{items: make(map[uint64]entities.EquipmentType)}
	for i, n := range names {
		id := uint64(i + 1)
		r.items[id] = entities.EquipmentType{ID: id, Name: n}
	}
	return r
}

func (r *fakeEquipmentTypeRepo) GetEquipmentTypes(ctx context.Context, filter types.Filter) ([]entities.EquipmentType, uint64, error) {
	out := make([]entities.EquipmentType, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	return out, uint64(len(out)), nil
}

func (r *fakeEquipmentTypeRepo) FindEquipmentType(ctx context.Context, id uint64) (*entities.EquipmentType, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *fakeEquipmentTypeRepo) FindByName(ctx context.Context, name string) (*entities.EquipmentType, error) {
	for _, t := range r.items {
		if strings.EqualFold(t.Name, name) {
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentTypeRepo) CreateEquipmentType(ctx context.Context, et entities.EquipmentType) (*entities.EquipmentType, error) {
	et.ID = uint64(len(r.items) + 1)
	r.items[et.ID] = et
	return &et, nil
}

func (r *fakeEquipmentTypeRepo) UpdateEquipmentType(ctx context.Context, id uint64, et entities.EquipmentType) (*entities.EquipmentType, error) {
	if _, ok := r.items[id]; !ok {
		return nil, apperrors.ErrNotFound
	}
	et.ID = id
	r.items[id] = et
	return &et, nil
}

func (r *fakeEquipmentTypeRepo) DeleteEquipmentType(ctx context.Context, id uint64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeStatusRepo struct {
	items []entities.Status
}

func (r *fakeStatusRepo) GetStatuses(ctx context.Context) ([]entities.Status, error) {
	return r.items, nil
}

func (r *fakeStatusRepo) FindStatus(ctx context.Context, id uint64) (*entities.Status, error) {
	for _, s := range r.items {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeStatusRepo) FindByCode(ctx context.Context, code string) (*entities.Status, error) {
	for _, s := range r.items {
		if s.Code == code {
			return &s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeStatusRepo) Upsert(ctx context.Context, code, name string) error {
	for i := range r.items {
		if r.items[i].Code == code {
			r.items[i].Name = name
			return nil
		}
	}
	r.items = append(r.items, entities.Status{ID: uint64(len(r.items) + 1), Code: code, Name: name})
	return nil
}

type fakeUserRepo struct {
	items []entities.User
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return r.items, uint64(len(r.items)), nil
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	for _, u := range r.items {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, u entities.User) (*entities.User, error) {
	for _, existing := range r.items {
		if strings.EqualFold(existing.Email, u.Email) {
			return nil, apperrors.ErrConflict
		}
	}
	u.ID = uint64(len(r.items) + 1)
	r.items = append(r.items, u)
	return &u, nil
}

// fakeCache is an in-memory CacheRepositoryInterface without expiry.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		c.data[key] = ""
	}
	c.ttls[key] = expiration
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.data[key], 10, 64)
	n++
	c.data[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	c.ttls[key] = expiration
	return ok, nil
}

func (c *fakeCache) DelByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

// fakeTxManager runs fn without a transaction; repositories accept a nil tx.
type fakeTxManager struct{ calls int }

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateDashboard(ctx context.Context) { c.calls++ }

type recordingPublisher struct {
	mu     sync.Mutex
	events []eventbus.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event eventbus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

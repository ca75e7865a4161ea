// Package memory is a process-local repository backend for development and tests.
// It mirrors the postgres backend's uniqueness and error semantics. Lists are ordered by name
// bytewise, matching the postgres queries' COLLATE "C", then by id.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/workout-api/internal/model"
	"github.com/maxviazov/workout-api/internal/repository"
)

// Store keeps every table behind one lock so cross-table lookups stay consistent.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	categories map[uuid.UUID]model.Category
	centers    map[uuid.UUID]model.TrainingCenter
	athletes   map[uuid.UUID]athleteRecord
}

type athleteRecord struct {
	athlete    model.Athlete
	categoryID uuid.UUID
	centerID   uuid.UUID
}

func NewStore() *Store {
	return &Store{
		now:        time.Now,
		categories: make(map[uuid.UUID]model.Category),
		centers:    make(map[uuid.UUID]model.TrainingCenter),
		athletes:   make(map[uuid.UUID]athleteRecord),
	}
}

func (s *Store) Categories() repository.CategoryRepository             { return categories{s} }
func (s *Store) TrainingCenters() repository.TrainingCenterRepository { return centers{s} }
func (s *Store) Athletes() repository.AthleteRepository               { return athletes{s} }

// Ping always succeeds; there is nothing to reach.
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// WithinTx runs fn directly. Individual operations are atomic; a failing fn is not rolled back.
func (s *Store) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var (
	_ repository.Pinger    = (*Store)(nil)
	_ repository.TxManager = (*Store)(nil)
)

type categories struct{ s *Store }

func (r categories) Create(_ context.Context, c model.Category) (model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.Name == c.Name {
			return model.Category{}, repository.ErrAlreadyExists
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if _, dup := r.s.categories[c.ID]; dup {
		return model.Category{}, repository.ErrAlreadyExists
	}
	c.CreatedAt = r.s.now().UTC()
	r.s.categories[c.ID] = c
	return c, nil
}

func (r categories) GetByID(_ context.Context, id uuid.UUID) (model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (r categories) GetByName(_ context.Context, name string) (model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categoryByName(name)
	if !ok {
		return model.Category{}, repository.ErrNotFound
	}
	return c, nil
}

func (r categories) List(_ context.Context) ([]model.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return byNameThenID(out[i].Name, out[j].Name, out[i].ID, out[j].ID) })
	return out, nil
}

type centers struct{ s *Store }

func (r centers) Create(_ context.Context, tc model.TrainingCenter) (model.TrainingCenter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.centerByName(tc.Name); exists {
		return model.TrainingCenter{}, repository.ErrAlreadyExists
	}
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	if _, dup := r.s.centers[tc.ID]; dup {
		return model.TrainingCenter{}, repository.ErrAlreadyExists
	}
	tc.CreatedAt = r.s.now().UTC()
	r.s.centers[tc.ID] = tc
	return tc, nil
}

func (r centers) GetByID(_ context.Context, id uuid.UUID) (model.TrainingCenter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tc, ok := r.s.centers[id]
	if !ok {
		return model.TrainingCenter{}, repository.ErrNotFound
	}
	return tc, nil
}

func (r centers) GetByName(_ context.Context, name string) (model.TrainingCenter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tc, ok := r.s.centerByName(name)
	if !ok {
		return model.TrainingCenter{}, repository.ErrNotFound
	}
	return tc, nil
}

func (r centers) List(_ context.Context) ([]model.TrainingCenter, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.TrainingCenter, 0, len(r.s.centers))
	for _, tc := range r.s.centers {
		out = append(out, tc)
	}
	sort.Slice(out, func(i, j int) bool { return byNameThenID(out[i].Name, out[j].Name, out[i].ID, out[j].ID) })
	return out, nil
}

type athletes struct{ s *Store }

func (r athletes) Create(_ context.Context, a model.Athlete) (model.Athlete, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cat, okCat := r.s.categoryByName(a.Category.Name)
	tc, okTC := r.s.centerByName(a.TrainingCenter.Name)
	if !okCat || !okTC {
		return model.Athlete{}, repository.ErrConflict
	}
	for _, rec := range r.s.athletes {
		if rec.athlete.CPF == a.CPF {
			return model.Athlete{}, repository.ErrAlreadyExists
		}
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = r.s.now().UTC()
	r.s.athletes[a.ID] = athleteRecord{athlete: a, categoryID: cat.ID, centerID: tc.ID}
	return r.s.resolve(r.s.athletes[a.ID]), nil
}

func (r athletes) GetByID(_ context.Context, id uuid.UUID) (model.Athlete, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.athletes[id]
	if !ok {
		return model.Athlete{}, repository.ErrNotFound
	}
	return r.s.resolve(rec), nil
}

func (r athletes) List(_ context.Context, f model.AthleteFilter) ([]model.Athlete, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Athlete, 0, len(r.s.athletes))
	for _, rec := range r.s.athletes {
		if f.Name != "" && rec.athlete.Name != f.Name {
			continue
		}
		if f.CPF != "" && rec.athlete.CPF != f.CPF {
			continue
		}
		out = append(out, r.s.resolve(rec))
	}
	sort.Slice(out, func(i, j int) bool { return byNameThenID(out[i].Name, out[j].Name, out[i].ID, out[j].ID) })
	return out, nil
}

func (r athletes) Update(_ context.Context, id uuid.UUID, p model.AthletePatch) (model.Athlete, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.athletes[id]
	if !ok {
		return model.Athlete{}, repository.ErrNotFound
	}
	if p.Name != nil {
		rec.athlete.Name = *p.Name
	}
	if p.Age != nil {
		rec.athlete.Age = *p.Age
	}
	r.s.athletes[id] = rec
	return r.s.resolve(rec), nil
}

func (r athletes) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.athletes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.athletes, id)
	return nil
}

// caller holds s.mu
func (s *Store) categoryByName(name string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}

// caller holds s.mu
func (s *Store) centerByName(name string) (model.TrainingCenter, bool) {
	for _, tc := range s.centers {
		if tc.Name == name {
			return tc, true
		}
	}
	return model.TrainingCenter{}, false
}

// caller holds s.mu
func (s *Store) resolve(rec athleteRecord) model.Athlete {
	a := rec.athlete
	a.Category = model.NamedRef{Name: s.categories[rec.categoryID].Name}
	a.TrainingCenter = model.NamedRef{Name: s.centers[rec.centerID].Name}
	return a
}

func byNameThenID(a, b string, idA, idB uuid.UUID) bool {
	if a != b {
		return a < b
	}
	return idA.String() < idB.String()
}

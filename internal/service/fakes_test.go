package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldsafe-service/internal/domain"
)

// In-memory repository fakes keyed by id. A nil map entry behaves like a
// missing row (pgx.ErrNoRows), matching the Postgres-backed implementations.

type fakeStaffRepo struct {
	byID    map[string]*domain.StaffMember
	byEmail map[string]*domain.StaffMember
	failAll bool
}

func newFakeStaffRepo(members ...*domain.StaffMember) *fakeStaffRepo {
	r := &fakeStaffRepo{
		byID:    make(map[string]*domain.StaffMember),
		byEmail: make(map[string]*domain.StaffMember),
	}
	for _, m := range members {
		r.byID[m.ID] = m
		r.byEmail[m.Email] = m
	}
	return r
}

func (r *fakeStaffRepo) Create(_ context.Context, staff *domain.StaffMember) error {
	r.byID[staff.ID] = staff
	r.byEmail[staff.Email] = staff
	return nil
}

func (r *fakeStaffRepo) Update(_ context.Context, staff *domain.StaffMember) error {
	if r.failAll {
		return errors.New("storage unavailable")
	}
	if _, ok := r.byID[staff.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) GetByID(_ context.Context, id string) (*domain.StaffMember, error) {
	if r.failAll {
		return nil, errors.New("storage unavailable")
	}
	staff, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func (r *fakeStaffRepo) GetByIDForTenant(ctx context.Context, id, tenantID string) (*domain.StaffMember, error) {
	staff, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if staff.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func (r *fakeStaffRepo) GetByEmail(_ context.Context, email string) (*domain.StaffMember, error) {
	staff, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return staff, nil
}

func (r *fakeStaffRepo) ListByTenant(_ context.Context, tenantID string) ([]*domain.StaffMember, error) {
	var out []*domain.StaffMember
	for _, m := range r.byID {
		if m.TenantID == tenantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeFieldworkerRepo struct {
	byID    map[string]*domain.Fieldworker
	byEmail map[string]*domain.Fieldworker
	failAll bool
}

func newFakeFieldworkerRepo(workers ...*domain.Fieldworker) *fakeFieldworkerRepo {
	r := &fakeFieldworkerRepo{
		byID:    make(map[string]*domain.Fieldworker),
		byEmail: make(map[string]*domain.Fieldworker),
	}
	for _, w := range workers {
		r.byID[w.ID] = w
		r.byEmail[w.Email] = w
	}
	return r
}

func (r *fakeFieldworkerRepo) Create(_ context.Context, worker *domain.Fieldworker) error {
	r.byID[worker.ID] = worker
	r.byEmail[worker.Email] = worker
	return nil
}

func (r *fakeFieldworkerRepo) Update(_ context.Context, worker *domain.Fieldworker) error {
	if _, ok := r.byID[worker.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[worker.ID] = worker
	return nil
}

func (r *fakeFieldworkerRepo) GetByID(_ context.Context, id string) (*domain.Fieldworker, error) {
	if r.failAll {
		return nil, errors.New("storage unavailable")
	}
	worker, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return worker, nil
}

func (r *fakeFieldworkerRepo) GetByIDForTenant(ctx context.Context, id, tenantID string) (*domain.Fieldworker, error) {
	worker, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if worker.TenantID != tenantID {
		return nil, pgx.ErrNoRows
	}
	return worker, nil
}

func (r *fakeFieldworkerRepo) GetByEmail(_ context.Context, email string) (*domain.Fieldworker, error) {
	worker, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return worker, nil
}

package memstore

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type AppointmentRepo struct {
	s    *Store
	inTx bool
}

var _ domain.Repository = (*AppointmentRepo)(nil)

func (r *AppointmentRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.s.transaction(func() error {
		return fn(&AppointmentRepo{s: r.s, inTx: true})
	})
}

// LockSlot é um no-op: transações já são serializadas pelo Store.
func (r *AppointmentRepo) LockSlot(ctx context.Context, slot domain.Slot) error {
	return nil
}

func (r *AppointmentRepo) UserExists(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

func (r *AppointmentRepo) ServiceExists(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.services[id]
	return ok, nil
}

func (r *AppointmentRepo) SlotTaken(ctx context.Context, slot domain.Slot, excludeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ap := range r.s.appointments {
		if ap.ID == excludeID || !domain.Status(ap.Status).OccupiesSlot() {
			continue
		}
		if domain.SlotOf(&ap).Equal(slot) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepo) Create(ctx context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.insertAppointment(ap)
	return nil
}

func (r *AppointmentRepo) Get(ctx context.Context, id uint) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ap, ok := r.s.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	full := r.s.withRefs(ap)
	return &full, nil
}

func (r *AppointmentRepo) Update(ctx context.Context, ap *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.insertAppointment(ap)
	return nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.appointments[id]; !ok {
		return false, nil
	}
	delete(r.s.appointments, id)
	return true, nil
}

func (r *AppointmentRepo) List(ctx context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Appointment{}
	for _, ap := range r.s.appointments {
		if f.UserID != nil && ap.UserID != *f.UserID {
			continue
		}
		if f.ServiceID != nil && ap.ServiceID != *f.ServiceID {
			continue
		}
		if f.Status != nil && ap.Status != string(*f.Status) {
			continue
		}
		day := domain.SlotOf(&ap).DateKey()
		if f.From != nil && day < f.From.Format(domain.DateLayout) {
			continue
		}
		if f.To != nil && day > f.To.Format(domain.DateLayout) {
			continue
		}
		out = append(out, r.s.withRefs(ap))
	}

	sortAppointments(out)
	return out, nil
}

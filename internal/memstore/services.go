package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type ServiceRepo struct {
	s    *Store
	inTx bool
}

var _ catalog.Repository = (*ServiceRepo)(nil)

func (r *ServiceRepo) Transaction(ctx context.Context, fn func(tx catalog.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.s.transaction(func() error {
		return fn(&ServiceRepo{s: r.s, inTx: true})
	})
}

func (r *ServiceRepo) Create(ctx context.Context, sv *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.insertService(sv)
	return nil
}

func (r *ServiceRepo) Get(ctx context.Context, id uint) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sv, ok := r.s.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sv, nil
}

func (r *ServiceRepo) List(ctx context.Context, f catalog.ListFilter) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Service{}
	for _, sv := range r.s.services {
		if f.Active != nil && sv.Active != *f.Active {
			continue
		}
		if f.Query != "" && !containsFold(sv.Name, f.Query) {
			continue
		}
		out = append(out, sv)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ServiceRepo) Update(ctx context.Context, sv *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[sv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.insertService(sv)
	return nil
}

func (r *ServiceRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return false, nil
	}
	delete(r.s.services, id)
	return true, nil
}

func (r *ServiceRepo) CancelFutureAppointments(ctx context.Context, serviceID uint, from appointment.Slot) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, ap := range r.s.appointments {
		if ap.ServiceID != serviceID || !appointment.Status(ap.Status).OccupiesSlot() {
			continue
		}
		if appointment.SlotOf(&ap).Key() < from.Key() {
			continue
		}
		ap.Status = string(appointment.StatusCancelled)
		r.s.appointments[id] = ap
		n++
	}
	return n, nil
}

func (r *ServiceRepo) DeleteAppointments(ctx context.Context, serviceID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.deleteAppointmentsWhere(func(ap models.Appointment) bool {
		return ap.ServiceID == serviceID
	}), nil
}

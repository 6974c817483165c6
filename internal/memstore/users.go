package memstore

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type UserRepo struct {
	s    *Store
	inTx bool
}

var _ account.Repository = (*UserRepo)(nil)

func (r *UserRepo) Transaction(ctx context.Context, fn func(tx account.Repository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.s.transaction(func() error {
		return fn(&UserRepo{s: r.s, inTx: true})
	})
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.insertUser(u)
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepo) FindConflicting(ctx context.Context, email, cpf string, excludeID uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.ID == excludeID {
			continue
		}
		if (email != "" && u.Email == email) || (cpf != "" && u.CPF == cpf) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(ctx context.Context, query string) ([]account.Summary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	counts := map[uint]int64{}
	for _, ap := range r.s.appointments {
		counts[ap.UserID]++
	}

	out := []account.Summary{}
	for _, u := range r.s.users {
		if query != "" && !containsFold(u.Name, query) && !containsFold(u.Email, query) {
			continue
		}
		out = append(out, account.Summary{User: u, AppointmentCount: counts[u.ID]})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *UserRepo) Update(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.insertUser(u)
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return false, nil
	}
	delete(r.s.users, id)
	return true, nil
}

func (r *UserRepo) DeleteAppointments(ctx context.Context, userID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.deleteAppointmentsWhere(func(ap models.Appointment) bool {
		return ap.UserID == userID
	}), nil
}

// Package memstore guarda usuários, serviços e agendamentos em memória.
// Implementa os repositórios de domínio para testes de casos de uso e de
// rotas. Uso exclusivo em testes: a API sempre usa os repositórios gorm.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

type Store struct {
	// txMu serializa transações inteiras; mu protege os mapas.
	txMu sync.Mutex
	mu   sync.Mutex

	users        map[uint]models.User
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	nextID       uint
}

func New() *Store {
	return &Store{
		users:        map[uint]models.User{},
		services:     map[uint]models.Service{},
		appointments: map[uint]models.Appointment{},
	}
}

func (s *Store) Appointments() *AppointmentRepo { return &AppointmentRepo{s: s} }
func (s *Store) Services() *ServiceRepo { return &ServiceRepo{s: s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// ======================================================
// Seeds (atalhos para testes)
// ======================================================

func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertUser(&u)
	return u
}

func (s *Store) AddService(sv models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertService(&sv)
	return sv
}

func (s *Store) AddAppointment(ap models.Appointment) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertAppointment(&ap)
	return ap
}

func (s *Store) Appointment(id uint) (models.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appointments[id]
	return ap, ok
}

func (s *Store) CountAppointments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

// ======================================================
// internals (chamar com mu travado)
// ======================================================

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) insertUser(u *models.User) {
	if u.ID == 0 {
		u.ID = s.id()
	}
	stamp(&u.CreatedAt, &u.UpdatedAt)
	s.users[u.ID] = *u
}

func (s *Store) insertService(sv *models.Service) {
	if sv.ID == 0 {
		sv.ID = s.id()
	}
	stamp(&sv.CreatedAt, &sv.UpdatedAt)
	s.services[sv.ID] = *sv
}

func (s *Store) insertAppointment(ap *models.Appointment) {
	if ap.ID == 0 {
		ap.ID = s.id()
	}
	stamp(&ap.CreatedAt, &ap.UpdatedAt)
	row := *ap
	row.User, row.Service = nil, nil
	s.appointments[ap.ID] = row
}

func (s *Store) withRefs(ap models.Appointment) models.Appointment {
	if u, ok := s.users[ap.UserID]; ok {
		ap.User = &u
	}
	if sv, ok := s.services[ap.ServiceID]; ok {
		ap.Service = &sv
	}
	return ap
}

func (s *Store) deleteAppointmentsWhere(match func(models.Appointment) bool) int64 {
	var n int64
	for id, ap := range s.appointments {
		if match(ap) {
			delete(s.appointments, id)
			n++
		}
	}
	return n
}

type snapshot struct {
	users        map[uint]models.User
	services     map[uint]models.Service
	appointments map[uint]models.Appointment
	nextID       uint
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		users:        clone(s.users),
		services:     clone(s.services),
		appointments: clone(s.appointments),
		nextID:       s.nextID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.users
	s.services = snap.services
	s.appointments = snap.appointments
	s.nextID = snap.nextID
}

// transaction executa fn com rollback dos mapas em caso de erro.
func (s *Store) transaction(fn func() error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func clone[T any](m map[uint]T) map[uint]T {
	out := make(map[uint]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func sortAppointments(list []models.Appointment) {
	sort.Slice(list, func(i, j int) bool {
		a, b := appointment.SlotOf(&list[i]).Key(), appointment.SlotOf(&list[j]).Key()
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

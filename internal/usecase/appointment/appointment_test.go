package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/memstore"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

var loc = time.FixedZone("BRT", -3*60*60)

type fixture struct {
	store   *memstore.Store
	rec     *memstore.Recorder
	admin   account.Actor
	client  account.Actor
	other   account.Actor
	service models.Service
	create  *CreateAppointment
	update  *UpdateAppointment
}

func newFixture() *fixture {
	store := memstore.New()
	rec := &memstore.Recorder{}
	repo := store.Appointments()

	admin := store.AddUser(models.User{Name: "Admin", Email: "admin@naf.test", Role: models.RoleAdmin})
	client := store.AddUser(models.User{Name: "Ana", Email: "ana@naf.test", Role: models.RoleUser})
	other := store.AddUser(models.User{Name: "Bruno", Email: "bruno@naf.test", Role: models.RoleUser})
	service := store.AddService(models.Service{Name: "Declaração de IR", DurationMin: 30, Active: true})

	return &fixture{
		store:   store,
		rec:     rec,
		admin:   account.Actor{UserID: admin.ID, Role: models.RoleAdmin},
		client:  account.Actor{UserID: client.ID, Role: models.RoleUser},
		other:   account.Actor{UserID: other.ID, Role: models.RoleUser},
		service: service,
		create:  NewCreateAppointment(repo, rec, loc),
		update:  NewUpdateAppointment(repo, rec, loc),
	}
}

func (f *fixture) book(t *testing.T, actor account.Actor, date, slot string) *models.Appointment {
	t.Helper()
	ap, err := f.create.Execute(context.Background(), actor, CreateAppointmentInput{
		Date:      date,
		TimeSlot:  slot,
		ServiceID: f.service.ID,
	})
	if err != nil {
		t.Fatalf("book %s %s: %v", date, slot, err)
	}
	return ap
}

func strPtr(s string) *string { return &s }

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

// ======================================================
// create
// ======================================================

func TestCreateDefaultsToPending(t *testing.T) {
	f := newFixture()

	ap := f.book(t, f.client, "2026-11-03", "14:00")

	if ap.Status != string(domain.StatusPending) {
		t.Errorf("expected pendente, got %s", ap.Status)
	}
	if ap.UserID != f.client.UserID {
		t.Errorf("expected owner %d, got %d", f.client.UserID, ap.UserID)
	}
	if ap.User == nil || ap.Service == nil {
		t.Error("expected user and service preloaded")
	}
	if got := f.rec.Actions(); len(got) != 1 || got[0] != "appointment_created" {
		t.Errorf("unexpected audit %v", got)
	}
}

func TestCreateRejectsDoubleBooking(t *testing.T) {
	f := newFixture()
	f.book(t, f.client, "2026-11-03", "14:00")

	_, err := f.create.Execute(context.Background(), f.other, CreateAppointmentInput{
		Date:      "2026-11-03",
		TimeSlot:  "14:00",
		ServiceID: f.service.ID,
	})

	expectCode(t, err, "slot_taken")
	if n := f.store.CountAppointments(); n != 1 {
		t.Errorf("expected 1 appointment, got %d", n)
	}
}

func TestCreateAfterCancelSucceeds(t *testing.T) {
	f := newFixture()
	first := f.book(t, f.client, "2026-11-03", "14:00")

	if _, err := f.update.Execute(context.Background(), f.client, first.ID, UpdateAppointmentInput{
		Status: strPtr("cancelado"),
	}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	f.book(t, f.other, "2026-11-03", "14:00")
}

func TestCreateCancelledSkipsSlotCheck(t *testing.T) {
	f := newFixture()
	f.book(t, f.client, "2026-11-03", "14:00")

	ap, err := f.create.Execute(context.Background(), f.admin, CreateAppointmentInput{
		Date:      "2026-11-03",
		TimeSlot:  "14:00",
		ServiceID: f.service.ID,
		UserID:    f.other.UserID,
		Status:    "Cancelado",
	})
	if err != nil {
		t.Fatalf("create cancelled: %v", err)
	}
	if ap.Status != "cancelado" {
		t.Errorf("unexpected status %s", ap.Status)
	}
}

func TestCreateMissingReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.create.Execute(ctx, f.admin, CreateAppointmentInput{
		Date: "2026-11-03", TimeSlot: "14:00", ServiceID: f.service.ID, UserID: 999,
	})
	expectCode(t, err, "user_not_found")

	_, err = f.create.Execute(ctx, f.client, CreateAppointmentInput{
		Date: "2026-11-03", TimeSlot: "14:00", ServiceID: 999,
	})
	expectCode(t, err, "service_not_found")
}

func TestCreateValidatesInput(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		in   CreateAppointmentInput
		code string
	}{
		{"bad date", CreateAppointmentInput{Date: "03/11/2026", TimeSlot: "14:00"}, "invalid_date"},
		{"bad slot", CreateAppointmentInput{Date: "2026-11-03", TimeSlot: "25:00"}, "invalid_time_slot"},
		{"bad status", CreateAppointmentInput{Date: "2026-11-03", TimeSlot: "14:00", Status: "remarcado"}, "invalid_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.ServiceID = f.service.ID
			_, err := f.create.Execute(ctx, f.admin, tt.in)
			expectCode(t, err, tt.code)
		})
	}
}

func TestCreateClientRestrictions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.create.Execute(ctx, f.client, CreateAppointmentInput{
		Date: "2026-11-03", TimeSlot: "14:00", ServiceID: f.service.ID, UserID: f.other.UserID,
	})
	expectCode(t, err, "forbidden")

	_, err = f.create.Execute(ctx, f.client, CreateAppointmentInput{
		Date: "2026-11-03", TimeSlot: "14:00", ServiceID: f.service.ID, Status: "confirmado",
	})
	expectCode(t, err, "forbidden")
}

func TestCreateConcurrentSameSlot(t *testing.T) {
	f := newFixture()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, busy int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.create.Execute(context.Background(), f.client, CreateAppointmentInput{
				Date: "2026-11-03", TimeSlot: "09:00", ServiceID: f.service.ID,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if httperr.IsBusiness(err, "slot_taken") {
				busy++
			}
		}()
	}
	wg.Wait()

	if ok != 1 || busy != 7 {
		t.Errorf("expected 1 success and 7 conflicts, got %d/%d", ok, busy)
	}
}

// ======================================================
// update
// ======================================================

func TestUpdatePartialKeepsOtherFields(t *testing.T) {
	f := newFixture()
	ap, err := f.create.Execute(context.Background(), f.client, CreateAppointmentInput{
		Date: "2026-11-03", TimeSlot: "14:00", ServiceID: f.service.ID, Notes: "trazer RG",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.update.Execute(context.Background(), f.admin, ap.ID, UpdateAppointmentInput{
		Status: strPtr("confirmado"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if got.Status != "confirmado" || got.Notes != "trazer RG" || got.TimeSlot != "14:00" {
		t.Errorf("unexpected appointment %+v", got)
	}
	if got.Date.Format(domain.DateLayout) != "2026-11-03" {
		t.Errorf("date changed to %s", got.Date.Format(domain.DateLayout))
	}
}

func TestUpdateClearsNotes(t *testing.T) {
	f := newFixture()
	ap, _ := f.create.Execute(context.Background(), f.client, CreateAppointmentInput{
		Date: "2026-11-03", TimeSlot: "14:00", ServiceID: f.service.ID, Notes: "trazer RG",
	})

	got, err := f.update.Execute(context.Background(), f.client, ap.ID, UpdateAppointmentInput{
		Notes: strPtr(""),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.Notes != "" {
		t.Errorf("expected empty notes, got %q", got.Notes)
	}
}

func TestUpdateMovingIntoTakenSlot(t *testing.T) {
	f := newFixture()
	f.book(t, f.client, "2026-11-03", "14:00")
	second := f.book(t, f.other, "2026-11-03", "15:00")

	_, err := f.update.Execute(context.Background(), f.admin, second.ID, UpdateAppointmentInput{
		TimeSlot: strPtr("14:00"),
	})
	expectCode(t, err, "slot_taken")

	stored, _ := f.store.Appointment(second.ID)
	if stored.TimeSlot != "15:00" {
		t.Errorf("failed update must not persist, got %s", stored.TimeSlot)
	}
}

func TestUpdateSameSlotDoesNotConflictWithItself(t *testing.T) {
	f := newFixture()
	ap := f.book(t, f.client, "2026-11-03", "14:00")

	if _, err := f.update.Execute(context.Background(), f.admin, ap.ID, UpdateAppointmentInput{
		Date:     strPtr("2026-11-03"),
		TimeSlot: strPtr("14:00"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateRevivingIntoTakenSlot(t *testing.T) {
	f := newFixture()
	first := f.book(t, f.client, "2026-11-03", "14:00")

	if _, err := f.update.Execute(context.Background(), f.admin, first.ID, UpdateAppointmentInput{
		Status: strPtr("cancelado"),
	}); err != nil {
		t.Fatal(err)
	}
	f.book(t, f.other, "2026-11-03", "14:00")

	_, err := f.update.Execute(context.Background(), f.admin, first.ID, UpdateAppointmentInput{
		Status: strPtr("pendente"),
	})
	expectCode(t, err, "slot_taken")
}

func TestUpdateMissing(t *testing.T) {
	f := newFixture()
	ap := f.book(t, f.client, "2026-11-03", "14:00")
	ctx := context.Background()

	_, err := f.update.Execute(ctx, f.admin, 999, UpdateAppointmentInput{Notes: strPtr("x")})
	expectCode(t, err, "appointment_not_found")

	missing := uint(999)
	_, err = f.update.Execute(ctx, f.admin, ap.ID, UpdateAppointmentInput{ServiceID: &missing})
	expectCode(t, err, "service_not_found")

	_, err = f.update.Execute(ctx, f.admin, ap.ID, UpdateAppointmentInput{UserID: &missing})
	expectCode(t, err, "user_not_found")
}

func TestUpdateAdminAnyStatus(t *testing.T) {
	f := newFixture()
	ap := f.book(t, f.client, "2026-11-03", "14:00")
	ctx := context.Background()

	for _, s := range []string{"concluido", "pendente", "Concluído", "confirmado"} {
		if _, err := f.update.Execute(ctx, f.admin, ap.ID, UpdateAppointmentInput{Status: strPtr(s)}); err != nil {
			t.Fatalf("status %s: %v", s, err)
		}
	}
}

func TestUpdateClientRestrictions(t *testing.T) {
	f := newFixture()
	ap := f.book(t, f.client, "2026-11-03", "14:00")
	ctx := context.Background()

	_, err := f.update.Execute(ctx, f.other, ap.ID, UpdateAppointmentInput{Status: strPtr("cancelado")})
	expectCode(t, err, "appointment_not_found")

	_, err = f.update.Execute(ctx, f.client, ap.ID, UpdateAppointmentInput{Status: strPtr("confirmado")})
	expectCode(t, err, "forbidden")

	_, err = f.update.Execute(ctx, f.client, ap.ID, UpdateAppointmentInput{UserID: &f.other.UserID})
	expectCode(t, err, "forbidden")

	if _, err := f.update.Execute(ctx, f.client, ap.ID, UpdateAppointmentInput{Status: strPtr("cancelado")}); err != nil {
		t.Fatalf("cancel own: %v", err)
	}

	_, err = f.update.Execute(ctx, f.client, ap.ID, UpdateAppointmentInput{Notes: strPtr("de novo")})
	expectCode(t, err, "terminal_status")

	actions := f.rec.Actions()
	if actions[len(actions)-1] != "appointment_cancelled" {
		t.Errorf("expected cancel audit, got %v", actions)
	}
}

// ======================================================
// get / list / delete
// ======================================================

func TestGetHidesOthersAppointments(t *testing.T) {
	f := newFixture()
	ap := f.book(t, f.client, "2026-11-03", "14:00")
	get := NewGetAppointment(f.store.Appointments())

	if _, err := get.Execute(context.Background(), f.client, ap.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	_, err := get.Execute(context.Background(), f.other, ap.ID)
	expectCode(t, err, "appointment_not_found")
}

func TestListScopesClients(t *testing.T) {
	f := newFixture()
	f.book(t, f.client, "2026-11-04", "10:00")
	f.book(t, f.client, "2026-11-03", "10:00")
	f.book(t, f.other, "2026-11-05", "10:00")
	list := NewListAppointments(f.store.Appointments(), loc)
	ctx := context.Background()

	all, err := list.Execute(ctx, f.admin, ListAppointmentsInput{})
	if err != nil || len(all) != 3 {
		t.Fatalf("admin list: %d %v", len(all), err)
	}

	// filtro de usuário é ignorado para quem não é admin
	own, err := list.Execute(ctx, f.client, ListAppointmentsInput{UserID: &f.other.UserID})
	if err != nil || len(own) != 2 {
		t.Fatalf("client list: %d %v", len(own), err)
	}
	if own[0].TimeSlot != "10:00" || own[0].Date.Format(domain.DateLayout) != "2026-11-03" {
		t.Errorf("expected ordered by date, got %+v", own[0])
	}

	ranged, err := list.Execute(ctx, f.admin, ListAppointmentsInput{From: "2026-11-04", To: "2026-11-04"})
	if err != nil || len(ranged) != 1 {
		t.Fatalf("range list: %d %v", len(ranged), err)
	}

	_, err = list.Execute(ctx, f.admin, ListAppointmentsInput{Status: "x"})
	expectCode(t, err, "invalid_status")
}

func TestDelete(t *testing.T) {
	f := newFixture()
	ap := f.book(t, f.client, "2026-11-03", "14:00")
	del := NewDeleteAppointment(f.store.Appointments(), f.rec)
	ctx := context.Background()

	expectCode(t, del.Execute(ctx, f.client, ap.ID), "forbidden")

	if err := del.Execute(ctx, f.admin, ap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectCode(t, del.Execute(ctx, f.admin, ap.ID), "appointment_not_found")
}

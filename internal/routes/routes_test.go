package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/auth"
	"github.com/BruksfildServices01/naf-scheduler/internal/cache"
	"github.com/BruksfildServices01/naf-scheduler/internal/config"
	"github.com/BruksfildServices01/naf-scheduler/internal/memstore"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
	"github.com/BruksfildServices01/naf-scheduler/internal/notify"
)

type auditReader struct {
	filter audit.Filter
}

func (r *auditReader) List(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	r.filter = f
	return []models.AuditLog{{ID: 1, Action: "appointment_created", Entity: "appointment"}}, 1, nil
}

type app struct {
	router  *gin.Engine
	store   *memstore.Store
	rec     *memstore.Recorder
	issuer  *auth.Issuer
	reader  *auditReader
	admin   models.User
	client  models.User
	service models.Service
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		FrontendURL:       "http://front.test",
		ImageMaxWidth:     512,
		ImageMaxUploadMiB: 1,
	}

	a := &app{
		router: gin.New(),
		store:  memstore.New(),
		rec:    &memstore.Recorder{},
		issuer: auth.NewIssuer("test-secret", time.Hour, 30*time.Minute),
		reader: &auditReader{},
	}
	a.admin = a.store.AddUser(models.User{Name: "Admin", Email: "admin@naf.test", CPF: "11144477735", Role: models.RoleAdmin})
	a.client = a.store.AddUser(models.User{Name: "Ana", Email: "ana@naf.test", CPF: "52998224725", Role: models.RoleUser})
	a.service = a.store.AddService(models.Service{Name: "Declaração de IR", DurationMin: 30, Active: true})

	err := RegisterRoutes(a.router, Deps{
		Config:       cfg,
		Log:          zap.NewNop(),
		Loc:          time.FixedZone("BRT", -3*60*60),
		Appointments: a.store.Appointments(),
		Services:     a.store.Services(),
		Users:        a.store.Users(),
		Audit:        a.rec,
		AuditReader:  a.reader,
		Cache:        cache.Nop{},
		Notifier:     notify.NewLogNotifier(zap.NewNop()),
		Issuer:       a.issuer,
	})
	if err != nil {
		t.Fatalf("register routes: %v", err)
	}
	return a
}

func (a *app) token(t *testing.T, u models.User) string {
	t.Helper()
	tok, err := a.issuer.Session(&u)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	return tok
}

func (a *app) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

type appointmentBody struct {
	ID       uint   `json:"id"`
	Date     string `json:"data"`
	TimeSlot string `json:"horario"`
	Status   string `json:"status"`
	Notes    string `json:"observacoes"`
	UserID   uint   `json:"usuarioId"`
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func (a *app) book(t *testing.T, token, date, slot string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodPost, "/agendamentos", token, gin.H{
		"data":      date,
		"horario":   slot,
		"servicoId": a.service.ID,
	})
}

// ------------------------------
// Tests
// ------------------------------

func TestHealth(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestDoubleBookingReturnsConflict(t *testing.T) {
	a := newApp(t)
	client := a.token(t, a.client)

	w := a.book(t, client, "2099-03-10", "09:00")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}
	created := decode[appointmentBody](t, w)
	if created.Date != "2099-03-10" || created.Status != "pendente" || created.UserID != a.client.ID {
		t.Errorf("unexpected appointment %+v", created)
	}

	w = a.book(t, a.token(t, a.admin), "2099-03-10", "09:00")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if e := decode[errorBody](t, w); e.Code != "slot_taken" {
		t.Errorf("expected slot_taken, got %s", e.Code)
	}
}

func TestCancelThenRebook(t *testing.T) {
	a := newApp(t)
	client := a.token(t, a.client)

	first := decode[appointmentBody](t, a.book(t, client, "2099-03-10", "09:00"))

	w := a.do(t, http.MethodPut, "/agendamentos/"+itoa(first.ID), client, gin.H{"status": "cancelado"})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", w.Code, w.Body)
	}

	w = a.book(t, client, "2099-03-10", "09:00")
	if w.Code != http.StatusCreated {
		t.Fatalf("rebook: expected 201, got %d: %s", w.Code, w.Body)
	}

	// reativar o cancelado bateria no novo agendamento
	w = a.do(t, http.MethodPut, "/agendamentos/"+itoa(first.ID), a.token(t, a.admin), gin.H{"status": "pendente"})
	if w.Code != http.StatusConflict {
		t.Fatalf("revive: expected 409, got %d", w.Code)
	}
}

func TestPartialUpdateKeepsOtherFields(t *testing.T) {
	a := newApp(t)
	admin := a.token(t, a.admin)

	w := a.do(t, http.MethodPost, "/agendamentos", admin, gin.H{
		"data":        "2099-03-10",
		"horario":     "10:00",
		"servicoId":   a.service.ID,
		"usuarioId":   a.client.ID,
		"observacoes": "levar documentos",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}
	ap := decode[appointmentBody](t, w)

	w = a.do(t, http.MethodPut, "/agendamentos/"+itoa(ap.ID), admin, gin.H{"observacoes": ""})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	got := decode[appointmentBody](t, w)

	if got.Notes != "" {
		t.Errorf("expected notes cleared, got %q", got.Notes)
	}
	if got.Date != "2099-03-10" || got.TimeSlot != "10:00" || got.Status != "pendente" {
		t.Errorf("other fields changed: %+v", got)
	}
}

func TestDeactivatingServiceCancelsFutureAppointments(t *testing.T) {
	a := newApp(t)
	client := a.token(t, a.client)

	a.book(t, client, "2099-03-10", "09:00")
	a.book(t, client, "2099-03-11", "09:00")

	w := a.do(t, http.MethodPut, "/servicos/"+itoa(a.service.ID), a.token(t, a.admin), gin.H{"ativo": false})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}

	res := decode[struct {
		Active    bool  `json:"ativo"`
		Cancelled int64 `json:"agendamentos_cancelados"`
	}](t, w)
	if res.Active || res.Cancelled != 2 {
		t.Errorf("unexpected response %+v", res)
	}

	list := decode[[]appointmentBody](t, a.do(t, http.MethodGet, "/agendamentos", client, nil))
	for _, ap := range list {
		if ap.Status != "cancelado" {
			t.Errorf("appointment %d still %s", ap.ID, ap.Status)
		}
	}
}

func TestDeleteUserRemovesAppointments(t *testing.T) {
	a := newApp(t)
	client := a.token(t, a.client)

	a.book(t, client, "2099-03-10", "09:00")
	a.book(t, client, "2099-03-10", "10:00")

	w := a.do(t, http.MethodDelete, "/usuarios/"+itoa(a.client.ID), a.token(t, a.admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if n := a.store.CountAppointments(); n != 0 {
		t.Errorf("expected no appointments left, got %d", n)
	}

	w = a.do(t, http.MethodGet, "/usuarios/"+itoa(a.client.ID), a.token(t, a.admin), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeleteServiceRemovesAppointments(t *testing.T) {
	a := newApp(t)
	a.book(t, a.token(t, a.client), "2099-03-10", "09:00")

	w := a.do(t, http.MethodDelete, "/servicos/"+itoa(a.service.ID), a.token(t, a.admin), nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body)
	}
	if n := a.store.CountAppointments(); n != 0 {
		t.Errorf("expected no appointments left, got %d", n)
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	a := newApp(t)

	body := gin.H{
		"nome":     "Carla",
		"email":    "carla@naf.test",
		"cpf":      "390.533.447-05",
		"telefone": "85999990000",
		"senha":    "segredo1",
	}

	w := a.do(t, http.MethodPost, "/auth/registrar", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body)
	}

	w = a.do(t, http.MethodPost, "/auth/registrar", "", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", w.Code)
	}

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "carla@naf.test", "senha": "segredo1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body)
	}
	login := decode[struct {
		Token string `json:"token"`
	}](t, w)

	w = a.do(t, http.MethodGet, "/auth/me", login.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}

	w = a.do(t, http.MethodPost, "/auth/login", "", gin.H{"email": "carla@naf.test", "senha": "errada"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: expected 401, got %d", w.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodPost, "/auth/registrar", "", gin.H{"nome": "Sem dados"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAccessControl(t *testing.T) {
	a := newApp(t)
	client := a.token(t, a.client)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"list appointments without token", http.MethodGet, "/agendamentos", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/agendamentos", "nope", http.StatusUnauthorized},
		{"users is admin only", http.MethodGet, "/usuarios", client, http.StatusForbidden},
		{"audit is admin only", http.MethodGet, "/audit-logs", client, http.StatusForbidden},
		{"create service is admin only", http.MethodPost, "/servicos", client, http.StatusForbidden},
		{"delete appointment is admin only", http.MethodDelete, "/agendamentos/1", client, http.StatusForbidden},
		{"services are public", http.MethodGet, "/servicos", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := a.do(t, tc.method, tc.path, tc.token, nil)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestClientCannotSeeOthersAppointments(t *testing.T) {
	a := newApp(t)
	other := a.store.AddUser(models.User{Name: "Bruno", Email: "bruno@naf.test", CPF: "39053344705", Role: models.RoleUser})

	ap := decode[appointmentBody](t, a.book(t, a.token(t, a.client), "2099-03-10", "09:00"))

	w := a.do(t, http.MethodGet, "/agendamentos/"+itoa(ap.ID), a.token(t, other), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	list := decode[[]appointmentBody](t, a.do(t, http.MethodGet, "/agendamentos", a.token(t, other), nil))
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
}

func TestAuditLogsQuery(t *testing.T) {
	a := newApp(t)

	w := a.do(t, http.MethodGet, "/audit-logs?action=appointment_created&limit=500", a.token(t, a.admin), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body)
	}
	if a.reader.filter.Action != "appointment_created" {
		t.Errorf("filter not forwarded: %+v", a.reader.filter)
	}
	if a.reader.filter.Limit != 50 {
		t.Errorf("expected out-of-range limit to fall back to 50, got %d", a.reader.filter.Limit)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

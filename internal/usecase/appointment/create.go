package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Date      string
	TimeSlot  string
	ServiceID uint
	UserID    uint
	Notes     string
	Status    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	loc   *time.Location
}

func NewCreateAppointment(
	repo domain.Repository,
	audit audit.Sink,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor account.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Dono do agendamento
	// --------------------------------------------------
	userID := in.UserID
	if userID == 0 {
		userID = actor.UserID
	}
	if !actor.CanAccess(userID) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	// --------------------------------------------------
	// 2️⃣ Slot (data + horário)
	// --------------------------------------------------
	date, err := domain.ParseDate(in.Date, uc.loc)
	if err != nil {
		return nil, err
	}
	timeSlot, err := domain.ParseTimeSlot(in.TimeSlot)
	if err != nil {
		return nil, err
	}
	slot := domain.NewSlot(date, timeSlot)

	// --------------------------------------------------
	// 3️⃣ Status inicial
	// --------------------------------------------------
	status := domain.InitialStatus()
	if in.Status != "" {
		if status, err = domain.ParseStatus(in.Status); err != nil {
			return nil, err
		}
	}
	if !actor.IsAdmin() && status != domain.InitialStatus() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	ap := &models.Appointment{
		Date:      date,
		TimeSlot:  timeSlot,
		Status:    string(status),
		Notes:     in.Notes,
		UserID:    userID,
		ServiceID: in.ServiceID,
	}

	// --------------------------------------------------
	// 4️⃣ Referências + conflito + criação (uma transação)
	// --------------------------------------------------
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := assertReferences(ctx, tx, &userID, &in.ServiceID); err != nil {
			return err
		}

		if status.OccupiesSlot() {
			if err := assertSlotFree(ctx, tx, slot, 0); err != nil {
				return err
			}
		}

		return tx.Create(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"data":    slot.DateKey(),
			"horario": slot.TimeSlot,
			"status":  ap.Status,
		},
	})

	return reload(ctx, uc.repo, ap)
}

// ======================================================
// HELPERS (compartilhados com update)
// ======================================================

// assertReferences confere usuário e serviço informados (nil = não checar).
func assertReferences(ctx context.Context, repo domain.Repository, userID, serviceID *uint) error {
	if userID != nil {
		ok, err := repo.UserExists(ctx, *userID)
		if err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if !ok {
			return httperr.ErrBusinessMsg("user_not_found",
				fmt.Sprintf("Usuário com ID %d não encontrado.", *userID))
		}
	}

	if serviceID != nil {
		ok, err := repo.ServiceExists(ctx, *serviceID)
		if err != nil {
			return fmt.Errorf("check service: %w", err)
		}
		if !ok {
			return httperr.ErrBusinessMsg("service_not_found",
				fmt.Sprintf("Serviço com ID %d não encontrado.", *serviceID))
		}
	}

	return nil
}

func assertSlotFree(ctx context.Context, repo domain.Repository, slot domain.Slot, excludeID uint) error {
	if err := repo.LockSlot(ctx, slot); err != nil {
		return fmt.Errorf("lock slot: %w", err)
	}

	taken, err := repo.SlotTaken(ctx, slot, excludeID)
	if err != nil {
		return fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return httperr.ErrBusiness("slot_taken")
	}
	return nil
}

// reload busca o agendamento com usuário e serviço carregados.
func reload(ctx context.Context, repo domain.Repository, ap *models.Appointment) (*models.Appointment, error) {
	full, err := repo.Get(ctx, ap.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ap, nil
		}
		return nil, fmt.Errorf("reload appointment: %w", err)
	}
	return full, nil
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/audit"
	"github.com/BruksfildServices01/naf-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/naf-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// UpdateAppointmentInput: nil significa "não alterar". Notes aceita "".
type UpdateAppointmentInput struct {
	Date      *string
	TimeSlot  *string
	Status    *string
	Notes     *string
	ServiceID *uint
	UserID    *uint
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Sink
	loc   *time.Location
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit audit.Sink,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
		loc:   loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor account.Actor,
	id uint,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Patch
	// --------------------------------------------------
	patch, err := uc.buildPatch(in)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if patch.UserID != nil && *patch.UserID != actor.UserID {
			return nil, httperr.ErrBusiness("forbidden")
		}
		if patch.Status != nil && *patch.Status != domain.StatusCancelled {
			return nil, httperr.ErrBusiness("forbidden")
		}
	}

	// --------------------------------------------------
	// 2️⃣ Leitura + conflito + gravação (uma transação)
	// --------------------------------------------------
	var (
		ap     *models.Appointment
		before string
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = findVisible(ctx, tx, actor, id)
		if err != nil {
			return err
		}
		before = ap.Status

		if !actor.IsAdmin() && domain.Status(ap.Status).IsTerminal() {
			return httperr.ErrBusiness("terminal_status")
		}

		if patch.Empty() {
			return nil
		}

		if err := assertReferences(ctx, tx, patch.UserID, patch.ServiceID); err != nil {
			return err
		}

		if patch.Apply(ap) {
			if err := assertSlotFree(ctx, tx, domain.SlotOf(ap), ap.ID); err != nil {
				return err
			}
		}

		return tx.Update(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	if patch.Empty() {
		return ap, nil
	}

	// --------------------------------------------------
	// 3️⃣ Auditoria
	// --------------------------------------------------
	action := "appointment_updated"
	if before != ap.Status && ap.Status == string(domain.StatusCancelled) {
		action = "appointment_cancelled"
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"status_anterior": before,
			"status":          ap.Status,
			"data":            domain.SlotOf(ap).DateKey(),
			"horario":         ap.TimeSlot,
		},
	})

	return reload(ctx, uc.repo, ap)
}

func (uc *UpdateAppointment) buildPatch(in UpdateAppointmentInput) (domain.Patch, error) {
	patch := domain.Patch{
		Notes:     in.Notes,
		ServiceID: in.ServiceID,
		UserID:    in.UserID,
	}

	if in.Date != nil {
		date, err := domain.ParseDate(*in.Date, uc.loc)
		if err != nil {
			return patch, err
		}
		patch.Date = &date
	}

	if in.TimeSlot != nil {
		slot, err := domain.ParseTimeSlot(*in.TimeSlot)
		if err != nil {
			return patch, err
		}
		patch.TimeSlot = &slot
	}

	if in.Status != nil {
		status, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return patch, err
		}
		patch.Status = &status
	}

	return patch, nil
}

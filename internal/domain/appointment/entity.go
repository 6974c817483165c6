package appointment

import (
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/models"
)

// ===============================
// Partial update
// ===============================

// Patch carrega apenas os campos informados; nil significa "não alterar".
// Notes pode ser definido como string vazia.
type Patch struct {
	Date      *time.Time
	TimeSlot  *string
	Status    *Status
	Notes     *string
	ServiceID *uint
	UserID    *uint
}

func (p Patch) Empty() bool {
	return p.Date == nil && p.TimeSlot == nil && p.Status == nil &&
		p.Notes == nil && p.ServiceID == nil && p.UserID == nil
}

// Apply altera ap in-place e informa se o agendamento passou a disputar um
// slot que não ocupava antes (mudou de data/horário ou saiu de cancelado).
func (p Patch) Apply(ap *models.Appointment) (needsSlotCheck bool) {
	before := SlotOf(ap)
	wasOccupying := Status(ap.Status).OccupiesSlot()

	if p.Date != nil {
		ap.Date = *p.Date
	}
	if p.TimeSlot != nil {
		ap.TimeSlot = *p.TimeSlot
	}
	if p.Status != nil {
		ap.Status = string(*p.Status)
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	if p.ServiceID != nil {
		ap.ServiceID = *p.ServiceID
		ap.Service = nil
	}
	if p.UserID != nil {
		ap.UserID = *p.UserID
		ap.User = nil
	}

	if !Status(ap.Status).OccupiesSlot() {
		return false
	}
	return !wasOccupying || !before.Equal(SlotOf(ap))
}

func SlotOf(ap *models.Appointment) Slot {
	return Slot{Date: ap.Date, TimeSlot: ap.TimeSlot}
}

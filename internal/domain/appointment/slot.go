package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/naf-scheduler/internal/httperr"
	"github.com/BruksfildServices01/naf-scheduler/internal/timezone"
	"github.com/BruksfildServices01/naf-scheduler/internal/validators"
)

const DateLayout = "2006-01-02"

// Slot é o par (data, horário) ocupado por um agendamento.
type Slot struct {
	Date     time.Time
	TimeSlot string
}

func NewSlot(date time.Time, timeSlot string) Slot {
	return Slot{Date: date, TimeSlot: timeSlot}
}

// DateKey é a data no formato da coluna DATE.
func (s Slot) DateKey() string {
	return s.Date.Format(DateLayout)
}

// Key identifica o slot de forma única ("2026-10-20 14:00").
func (s Slot) Key() string {
	return s.DateKey() + " " + s.TimeSlot
}

func (s Slot) Equal(o Slot) bool {
	return s.Key() == o.Key()
}

// ParseDate aceita "YYYY-MM-DD" (dia local) ou RFC3339; o resultado é
// sempre a meia-noite do dia em loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.ParseInLocation(DateLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return timezone.DateOnly(t.In(loc), loc), nil
	}
	return time.Time{}, httperr.ErrBusiness("invalid_date")
}

func ParseTimeSlot(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !validators.IsTimeSlotValid(raw) {
		return "", httperr.ErrBusiness("invalid_time_slot")
	}
	return raw, nil
}

// SlotAt devolve o slot correspondente ao instante now (minuto corrente).
func SlotAt(now time.Time) Slot {
	return Slot{
		Date:     timezone.DateOnly(now, now.Location()),
		TimeSlot: now.Format("15:04"),
	}
}

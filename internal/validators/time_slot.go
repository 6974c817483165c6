package validators

import "regexp"

var timeSlotRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsTimeSlotValid aceita apenas "HH:MM" com zero à esquerda, o que mantém a
// ordenação lexicográfica igual à cronológica.
func IsTimeSlotValid(slot string) bool {
	return timeSlotRe.MatchString(slot)
}

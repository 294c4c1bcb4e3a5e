package reconcile

import (
	"strings"

	"github.com/vsinha/reqrecon/pkg/domain/entities"
)

// SplitPlannedDateTime splits a raw planned date on spaces into date and
// time: the first field is the date and the second is the time. Anything
// after the second field is ignored. Without a space the whole value is the
// date and the time is "00:00".
func SplitPlannedDateTime(raw string) (date, hour string) {
	date, rest, found := strings.Cut(raw, " ")
	if !found {
		return raw, entities.DefaultPlannedHour
	}
	hour, _, _ = strings.Cut(rest, " ")
	return date, hour
}

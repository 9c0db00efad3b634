package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lfarias/gestor-academico/internal/pkg/apperrors"
)

// Slot is a weekly time slot: a day token plus the half-open hour
// interval [Start, End).
type Slot struct {
	Day   string
	Start int
	End   int
}

// String reconstructs the compact day-start-end descriptor.
func (s Slot) String() string {
	return fmt.Sprintf("%s-%d-%d", s.Day, s.Start, s.End)
}

// Parse parses a descriptor of the form day-start-end (e.g. "seg-8-10").
// The day token is trimmed and lowercased; start and end must be integers.
func Parse(descriptor string) (Slot, error) {
	parts := strings.Split(descriptor, "-")
	if len(parts) != 3 {
		return Slot{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidScheduleFormat, descriptor)
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidScheduleFormat, descriptor)
	}

	end, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Slot{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidScheduleFormat, descriptor)
	}

	return Slot{
		Day:   strings.ToLower(strings.TrimSpace(parts[0])),
		Start: start,
		End:   end,
	}, nil
}

// Conflict reports whether two descriptors overlap on the same day.
// Descriptors that fail to parse are treated as conflicting: an unreadable
// schedule must never allow a double-booking through.
func Conflict(a, b string) bool {
	slotA, err := Parse(a)
	if err != nil {
		return true
	}
	slotB, err := Parse(b)
	if err != nil {
		return true
	}

	if slotA.Day != slotB.Day {
		return false
	}

	return max(slotA.Start, slotB.Start) < min(slotA.End, slotB.End)
}

package enums

import "fmt"

// TimeSlot buckets the day into the four serving windows used for scoring.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
	TimeSlotNight     TimeSlot = "night"
)

var validTimeSlots = []TimeSlot{
	TimeSlotMorning,
	TimeSlotAfternoon,
	TimeSlotEvening,
	TimeSlotNight,
}

// String implements fmt.Stringer.
func (t TimeSlot) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimeSlot.
func (t TimeSlot) IsValid() bool {
	for _, candidate := range validTimeSlots {
		if candidate == t {
			return true
		}
	}
	return false
}

// SlotForHour maps an hour of day onto its slot: morning 6-12, afternoon
// 12-17, evening 17-21, night otherwise.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour >= 6 && hour < 12:
		return TimeSlotMorning
	case hour >= 12 && hour < 17:
		return TimeSlotAfternoon
	case hour >= 17 && hour < 21:
		return TimeSlotEvening
	default:
		return TimeSlotNight
	}
}

// ParseTimeSlot converts raw input into a TimeSlot.
func ParseTimeSlot(value string) (TimeSlot, error) {
	for _, candidate := range validTimeSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", value)
}

package json_types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ClockTime - время в минутах с полуночи, в JSON представляется строкой "HH:MM"
type ClockTime int

const MinutesPerDay = 1440

func ParseClock(str string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(str), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("failed to parse clock time %q", str)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("failed to parse clock time %q: %v", str, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("failed to parse clock time %q: %v", str, err)
	}

	if hours < 0 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q is out of range", str)
	}

	total := hours*60 + minutes
	if total > MinutesPerDay {
		return 0, fmt.Errorf("clock time %q is out of range", str)
	}

	return ClockTime(total), nil
}

func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	if len(data) < 2 {
		return fmt.Errorf("failed to parse clock time %q", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsed, err := ParseClock(str)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// SlotRange - полуоткрытый интервал [Start, End), в JSON "HH:MM-HH:MM"
type SlotRange struct {
	Start ClockTime
	End   ClockTime
}

func ParseSlotRange(str string) (SlotRange, error) {
	parts := strings.SplitN(str, "-", 2)
	if len(parts) != 2 {
		return SlotRange{}, fmt.Errorf("failed to parse slot range %q", str)
	}

	start, err := ParseClock(parts[0])
	if err != nil {
		return SlotRange{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return SlotRange{}, err
	}

	return SlotRange{Start: start, End: end}, nil
}

func (r SlotRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
func (r SlotRange) Overlaps(other SlotRange) bool {
	return r.Start < other.End && other.Start < r.End
}

func (r *SlotRange) UnmarshalJSON(data []byte) error {
	// Убираем кавычки вокруг строки
	if len(data) < 2 {
		return fmt.Errorf("failed to parse slot range %q", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsed, err := ParseSlotRange(str)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r SlotRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

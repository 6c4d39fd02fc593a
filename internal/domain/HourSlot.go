package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// HourSlotLabel formata a hora no rótulo armazenado, ex.: "14:00 - 14:59"
func HourSlotLabel(hour int) string {
	return fmt.Sprintf("%02d:00 - %02d:59", hour, hour)
}

// ParseHourSlot aceita "14:00:00 - 14:59:59", "14:00 - 14:59" ou "14"
func ParseHourSlot(slot string) (int, error) {
	s := strings.TrimSpace(slot)
	if s == "" {
		return 0, fmt.Errorf("faixa horária vazia")
	}

	if i := strings.IndexAny(s, ": -"); i >= 0 {
		s = s[:i]
	}

	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("faixa horária inválida %q: %w", slot, err)
	}
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("faixa horária fora do intervalo %q", slot)
	}

	return hour, nil
}

// PreviousSlot retorna a data e a hora da faixa imediatamente anterior.
// A hora 0 aponta para a hora 23 do dia anterior.
func PreviousSlot(date time.Time, hour int) (time.Time, int) {
	if hour == 0 {
		return TruncateDay(date).AddDate(0, 0, -1), 23
	}
	return TruncateDay(date), hour - 1
}

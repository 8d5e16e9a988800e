package utils

import (
	"strings"
	"time"
)

// ParseDate lê datas no formato YYYY-MM-DD. Texto vazio devolve a data zero,
// que o chamador trata como "não informada".
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr = strings.TrimSpace(dateStr); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	return &date, nil
}

package payroll

import (
	"strconv"
	"strings"
)

const (
	defaultListPageSize = 50
	maxListPageSize     = 200
)

func normalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidID
	}
	return trimmed, nil
}

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidName
	}
	return trimmed, nil
}

func normalizeKind(raw Kind) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(string(raw))))
	if !kind.Valid() {
		return "", ErrUnknownKind
	}
	return kind, nil
}

// Valid は既知の種別かどうかを返します。
func (k Kind) Valid() bool {
	switch k {
	case KindSalary, KindHourly, KindCommission, KindSecretary, KindTemporarySecretary, KindDisgruntled:
		return true
	default:
		return false
	}
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}

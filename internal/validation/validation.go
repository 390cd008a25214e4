package validation

import (
	"math"
	"strings"

	"github.com/IlyaKukarkin/bee-bloom/internal/constants"
	apperrors "github.com/IlyaKukarkin/bee-bloom/internal/errors"
)

// NormalizeTitle trims the title and enforces the non-empty and length rules.
func NormalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", apperrors.Validationf("title must not be empty")
	}
	if len([]rune(trimmed)) > constants.TitleMaxLen {
		return "", apperrors.Validationf("title exceeds %d characters", constants.TitleMaxLen)
	}
	return trimmed, nil
}

// NormalizeDescription trims the description. An empty result maps to nil
// (description cleared).
func NormalizeDescription(description string) (*string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > constants.DescriptionMaxLen {
		return nil, apperrors.Validationf("description exceeds %d characters", constants.DescriptionMaxLen)
	}
	return &trimmed, nil
}

// ClampWeeklyTarget clamps an integer weekly target into [1,7]. Out-of-range
// input is silently clamped, never rejected.
func ClampWeeklyTarget(target int) int {
	if target < constants.WeeklyTargetMin {
		return constants.WeeklyTargetMin
	}
	if target > constants.WeeklyTargetMax {
		return constants.WeeklyTargetMax
	}
	return target
}

// WeeklyTargetFromCell interprets a raw stored cell as a weekly target.
// Persisted JSON numbers arrive as float64; non-integral or unrecognized
// values fall back to the default rather than failing.
func WeeklyTargetFromCell(v interface{}) int {
	switch n := v.(type) {
	case int:
		return ClampWeeklyTarget(n)
	case int64:
		return ClampWeeklyTarget(int(n))
	case float64:
		if n != math.Trunc(n) {
			return constants.WeeklyTargetDefault
		}
		return ClampWeeklyTarget(int(n))
	default:
		return constants.WeeklyTargetDefault
	}
}

package validation

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	// Cell id must be alphanumeric with hyphens/underscores/dots, 1-64 chars
	cellIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,63}$`)
)

// SanitizeString removes potentially dangerous characters and trims whitespace
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters except newline and tab
	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateCellID checks that a battery cell identifier is safe to use in paths and logs
func ValidateCellID(cellID string) error {
	if cellID == "" {
		return fmt.Errorf("%w: cell id cannot be empty", ErrInvalidInput)
	}
	if !cellIDRegex.MatchString(cellID) {
		return fmt.Errorf("%w: cell id must start with alphanumeric and contain only letters, numbers, dots, hyphens, and underscores", ErrInvalidInput)
	}
	return nil
}

// SanitizeFilename strips any directory part and control characters from an uploaded name
func SanitizeFilename(name string) string {
	name = SanitizeString(name)
	name = strings.ReplaceAll(name, "\\", "/")
	return filepath.Base(name)
}

// ValidateFilename checks an uploaded file name after sanitizing it
func ValidateFilename(name string) error {
	name = SanitizeFilename(name)

	if name == "" || name == "." || name == "/" {
		return fmt.Errorf("%w: file name cannot be empty", ErrInvalidInput)
	}
	if len(name) > 255 {
		return fmt.Errorf("%w: file name must not exceed 255 characters", ErrInvalidInput)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: hidden files are not accepted", ErrInvalidInput)
	}
	return nil
}

// ValidateThresholdPercent checks an EOL threshold expressed in percent
func ValidateThresholdPercent(percent float64) error {
	if math.IsNaN(percent) || math.IsInf(percent, 0) {
		return fmt.Errorf("%w: threshold must be finite", ErrInvalidInput)
	}
	if percent <= 0 || percent >= 100 {
		return fmt.Errorf("%w: threshold must be between 0 and 100 exclusive", ErrInvalidInput)
	}
	return nil
}

package validation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OldStager01/battery-health/pkg/validation"
)

func TestValidateCellID(t *testing.T) {
	tests := []struct {
		name    string
		cellID  string
		wantErr bool
	}{
		{name: "simple", cellID: "cell-1"},
		{name: "dotted", cellID: "B0005.v2"},
		{name: "empty", cellID: "", wantErr: true},
		{name: "path traversal", cellID: "../etc", wantErr: true},
		{name: "slash", cellID: "a/b", wantErr: true},
		{name: "leading hyphen", cellID: "-cell", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.ValidateCellID(tt.cellID)
			if tt.wantErr {
				assert.ErrorIs(t, err, validation.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "data.csv", validation.SanitizeFilename("  /tmp/uploads/data.csv "))
	assert.Equal(t, "data.xlsx", validation.SanitizeFilename(`C:\Users\me\data.xlsx`))
	assert.Equal(t, "abc.csv", validation.SanitizeFilename("a\x00b\x07c.csv"))
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, validation.ValidateFilename("battery.csv"))
	assert.Error(t, validation.ValidateFilename("   "))
	assert.Error(t, validation.ValidateFilename(".hidden.csv"))
}

func TestValidateThresholdPercent(t *testing.T) {
	assert.NoError(t, validation.ValidateThresholdPercent(80))
	assert.Error(t, validation.ValidateThresholdPercent(0))
	assert.Error(t, validation.ValidateThresholdPercent(100))
	assert.Error(t, validation.ValidateThresholdPercent(math.NaN()))
}

package upload

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/OldStager01/battery-health/pkg/validation"
)

func newTestReceiver(t *testing.T) *Receiver {
	t.Helper()
	r := NewReceiver(Config{MaxSizeBytes: 1024, HistorySize: 3}, nil)
	r.nowFunc = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestAccept_AllowedTypes(t *testing.T) {
	r := newTestReceiver(t)

	for _, name := range []string{"cells.csv", "cells.XLSX", "legacy.xls"} {
		receipt, err := r.Accept(name, 10)
		require.NoError(t, err, name)
		assert.Equal(t, name, receipt.Filename)
		assert.Equal(t,
			fmt.Sprintf("File %s uploaded successfully; in the full version the data would be processed automatically.", name),
			receipt.Message)
	}
}

func TestAccept_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{"wrong extension", "notes.txt", 10, ErrUnsupportedType},
		{"no extension", "README", 10, ErrUnsupportedType},
		{"empty", "cells.csv", 0, ErrEmptyFile},
		{"too large", "cells.csv", 2048, ErrFileTooLarge},
		{"hidden", ".cells.csv", 10, validation.ErrInvalidInput},
		{"blank name", "", 10, validation.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReceiver(t)
			receipt, err := r.Accept(tt.filename, tt.size)
			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, r.Recent(0))
		})
	}
}

func TestAccept_StripsDirectories(t *testing.T) {
	r := newTestReceiver(t)

	receipt, err := r.Accept(`..\..\etc\data.csv`, 5)
	require.NoError(t, err)
	assert.Equal(t, "data.csv", receipt.Filename)
	assert.Equal(t, "csv", receipt.Extension)
}

func TestRecent_NewestFirstAndBounded(t *testing.T) {
	r := newTestReceiver(t)
	for i := 0; i < 5; i++ {
		_, err := r.Accept(fmt.Sprintf("f%d.csv", i), 1)
		require.NoError(t, err)
	}

	recent := r.Recent(0)
	require.Len(t, recent, 3)
	assert.Equal(t, "f4.csv", recent[0].Filename)
	assert.Equal(t, "f2.csv", recent[2].Filename)

	assert.Len(t, r.Recent(1), 1)
}

func TestAccept_PublishesEvent(t *testing.T) {
	bus := events.NewEventBus(4)
	defer bus.Close()
	ch := bus.Subscribe(models.EventTypeUploadReceived)

	r := NewReceiver(Config{AllowedExtensions: []string{".CSV"}}, events.NewPublisher(bus))
	receipt, err := r.Accept("a.csv", 1)
	require.NoError(t, err)

	select {
	case event := <-ch:
		assert.Equal(t, receipt.ID, event.Subject)
	case <-time.After(time.Second):
		t.Fatal("expected upload event")
	}
	assert.Equal(t, []string{"csv"}, r.Extensions())
}

package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/OldStager01/battery-health/internal/events"
	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/internal/metrics"
	"github.com/OldStager01/battery-health/pkg/models"
	"github.com/OldStager01/battery-health/pkg/validation"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
)

const acknowledgement = "File %s uploaded successfully; in the full version the data would be processed automatically."

type Config struct {
	AllowedExtensions []string
	MaxSizeBytes      int64
	HistorySize       int
}

// Receiver acknowledges uploads without reading their content.
type Receiver struct {
	allowed   map[string]bool
	exts      []string
	maxSize   int64
	history   int
	publisher *events.Publisher

	mu      sync.RWMutex
	recent  []*models.UploadReceipt
	nowFunc func() time.Time
}

func NewReceiver(cfg Config, publisher *events.Publisher) *Receiver {
	exts := cfg.AllowedExtensions
	if len(exts) == 0 {
		exts = []string{"csv", "xlsx", "xls"}
	}
	allowed := make(map[string]bool, len(exts))
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" || allowed[ext] {
			continue
		}
		allowed[ext] = true
		normalized = append(normalized, ext)
	}
	history := cfg.HistorySize
	if history <= 0 {
		history = 50
	}
	return &Receiver{
		allowed:   allowed,
		exts:      normalized,
		maxSize:   cfg.MaxSizeBytes,
		history:   history,
		publisher: publisher,
		nowFunc:   time.Now,
	}
}

// MaxSizeBytes is zero when no limit is configured.
func (r *Receiver) MaxSizeBytes() int64 {
	return r.maxSize
}

func (r *Receiver) Accept(filename string, size int64) (*models.UploadReceipt, error) {
	receipt, err := r.accept(filename, size)
	metrics.ObserveUpload(err == nil)
	if err != nil {
		logger.WithField("filename", validation.SanitizeString(filename)).Debugf("Upload rejected: %v", err)
		return nil, err
	}

	r.mu.Lock()
	r.recent = append(r.recent, receipt)
	if len(r.recent) > r.history {
		r.recent = r.recent[len(r.recent)-r.history:]
	}
	r.mu.Unlock()

	logger.WithFields(map[string]interface{}{
		"upload_id": receipt.ID,
		"filename":  receipt.Filename,
		"size":      receipt.SizeBytes,
	}).Info("Upload received")
	r.publisher.UploadReceived(receipt)

	return receipt, nil
}

func (r *Receiver) accept(filename string, size int64) (*models.UploadReceipt, error) {
	name := validation.SanitizeFilename(filename)
	if err := validation.ValidateFilename(name); err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !r.allowed[ext] {
		return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedType, ext, strings.Join(r.Extensions(), ", "))
	}
	if size <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, name)
	}
	if r.maxSize > 0 && size > r.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrFileTooLarge, size, r.maxSize)
	}

	return &models.UploadReceipt{
		ID:         models.NewShortID("upl"),
		Filename:   name,
		Extension:  ext,
		SizeBytes:  size,
		ReceivedAt: r.nowFunc(),
		Message:    fmt.Sprintf(acknowledgement, name),
	}, nil
}

// Recent returns up to limit receipts, newest first.
func (r *Receiver) Recent(limit int) []*models.UploadReceipt {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.recent) {
		limit = len(r.recent)
	}
	out := make([]*models.UploadReceipt, 0, limit)
	for i := len(r.recent) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.recent[i])
	}
	return out
}

// Extensions lists the accepted extensions in configured order.
func (r *Receiver) Extensions() []string {
	out := make([]string, len(r.exts))
	copy(out, r.exts)
	return out
}

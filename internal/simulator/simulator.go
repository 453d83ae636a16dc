package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OldStager01/battery-health/internal/logger"
	"github.com/OldStager01/battery-health/pkg/validation"
)

type Config struct {
	Port          int
	DefaultCycles int
	DefaultModel  string
}

// Simulator serves synthetic trajectories over HTTP, standing in for a model inference service.
type Simulator struct {
	config     Config
	cells      map[string]DecayModel
	mu         sync.RWMutex
	httpServer *http.Server
}

func New(cfg Config) *Simulator {
	if cfg.Port == 0 {
		cfg.Port = 9000
	}
	if cfg.DefaultCycles <= 0 {
		cfg.DefaultCycles = DefaultCycles
	}

	return &Simulator{
		config: cfg,
		cells:  make(map[string]DecayModel),
	}
}

func cors(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// Handler exposes the routes without binding a port, used by Start and by tests.
func (s *Simulator) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", cors(s.healthHandler))
	mux.HandleFunc("/trajectories/", cors(s.trajectoryHandler))
	mux.HandleFunc("/cells", cors(s.listCellsHandler))
	mux.HandleFunc("/cells/", cors(s.cellHandler))
	return mux
}

func (s *Simulator) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Infof("Simulator listening on %s", addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("Simulator server error: %v", err)
		}
	}()

	return nil
}

func (s *Simulator) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// SetCellModel pins a decay model to a cell.
func (s *Simulator) SetCellModel(cellID string, model DecayModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells[cellID] = model
}

func (s *Simulator) modelFor(cellID string) DecayModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if model, ok := s.cells[cellID]; ok {
		return model
	}
	return ParseModel(s.config.DefaultModel)
}

// HTTP Handlers

func (s *Simulator) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "soh-simulator",
	})
}

type trajectoryResponse struct {
	CellID     string      `json:"cell_id"`
	Model      string      `json:"model"`
	Timestamp  string      `json:"timestamp"`
	Trajectory interface{} `json:"trajectory"`
}

func (s *Simulator) trajectoryHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path: /trajectories/{cellID}
	cellID := strings.TrimPrefix(r.URL.Path, "/trajectories/")
	if err := validation.ValidateCellID(cellID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cycles := s.config.DefaultCycles
	if raw := r.URL.Query().Get("cycles"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100000 {
			http.Error(w, "cycles must be between 1 and 100000", http.StatusBadRequest)
			return
		}
		cycles = parsed
	}

	model := s.modelFor(cellID)
	if name := r.URL.Query().Get("model"); name != "" {
		model = ParseModel(name)
	}

	writeJSON(w, http.StatusOK, trajectoryResponse{
		CellID:     cellID,
		Model:      model.Name(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Trajectory: Generate(model, cycles),
	})
}

func (s *Simulator) listCellsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.mu.RLock()
	cells := make([]map[string]string, 0, len(s.cells))
	for id, model := range s.cells {
		cells = append(cells, map[string]string{"id": id, "model": model.Name()})
	}
	s.mu.RUnlock()

	sort.Slice(cells, func(i, j int) bool { return cells[i]["id"] < cells[j]["id"] })

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cells": cells,
		"count": len(cells),
	})
}

type SetCellRequest struct {
	Model string `json:"model"`
}

func (s *Simulator) cellHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	cellID := strings.TrimPrefix(r.URL.Path, "/cells/")
	if err := validation.ValidateCellID(cellID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req SetCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	model := ParseModel(req.Model)
	s.SetCellModel(cellID, model)
	logger.WithCell(cellID).Infof("Cell pinned to %s decay", model.Name())

	writeJSON(w, http.StatusCreated, map[string]string{"id": cellID, "model": model.Name()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

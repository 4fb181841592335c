package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Judith-olmand/persona/pkg/codec"
	"github.com/Judith-olmand/persona/pkg/store"
)

// maxDecodeBody bounds the raw body accepted by the decode endpoint. A
// maximal record is 12 + 65535 bytes; anything larger is not a record.
const maxDecodeBody = codec.HeaderSize + codec.MaxNameLength + 4 + 1

// Server holds the API server state
type Server struct {
	log     IPersonaLog
	codec   *codec.RecordCodec
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(log IPersonaLog, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		log:     log,
		codec:   codec.NewRecordCodec(),
		config:  config,
		metrics: metrics,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleAppend godoc
//
//	@Summary		Append a persona record
//	@Description	Encode a persona record and append it to the log
//	@Tags			personas
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PersonaRequest	true	"Persona record"
//	@Success		200		{object}	AppendResult
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/personas [post]
//	@Security		ApiKeyAuth
func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.recordLogOperation("append", false, start)
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	record := codec.Record{Name: req.Name, Age: req.Age}
	if len(record.Name) > codec.MaxNameLength {
		s.recordLogOperation("append", false, start)
		sendError(w, fmt.Sprintf("Name exceeds %d bytes", codec.MaxNameLength), http.StatusBadRequest)
		return
	}

	offset, err := s.log.Append(record)
	if err != nil {
		s.recordLogOperation("append", false, start)
		sendError(w, fmt.Sprintf("Failed to append record: %v", err), http.StatusInternalServerError)
		return
	}

	s.recordLogOperation("append", true, start)
	sendSuccess(w, AppendResult{Offset: offset, Size: codec.EncodedSize(record)})
}

// handleList godoc
//
//	@Summary		List persona records
//	@Description	List every record in the log in append order
//	@Tags			personas
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Failure		500	{object}	map[string]string
//	@Router			/personas [get]
//	@Security		ApiKeyAuth
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	records, err := s.log.List()
	if err != nil {
		s.recordLogOperation("list", false, start)
		sendError(w, fmt.Sprintf("Failed to list records: %v", err), http.StatusInternalServerError)
		return
	}

	personas := make([]PersonaResponse, 0, len(records))
	for _, record := range records {
		personas = append(personas, toResponse(record))
	}

	s.recordLogOperation("list", true, start)
	sendSuccess(w, map[string]interface{}{"personas": personas})
}

// handleLatest godoc
//
//	@Summary		Get the latest persona record
//	@Description	Get the most recently appended record
//	@Tags			personas
//	@Produce		json
//	@Success		200	{object}	PersonaResponse
//	@Failure		404	{object}	map[string]string
//	@Failure		500	{object}	map[string]string
//	@Router			/personas/latest [get]
//	@Security		ApiKeyAuth
func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	record, err := s.log.Last()
	if err != nil {
		s.recordLogOperation("last", false, start)
		if errors.Is(err, store.ErrNotFound) {
			sendError(w, "No records in log", http.StatusNotFound)
		} else {
			sendError(w, fmt.Sprintf("Failed to read record: %v", err), http.StatusInternalServerError)
		}
		return
	}

	s.recordLogOperation("last", true, start)
	sendSuccess(w, toResponse(record))
}

// handleDecode godoc
//
//	@Summary		Decode raw record bytes
//	@Description	Decode an encoded persona record without storing it. Failures carry the decode error class.
//	@Tags			personas
//	@Accept			octet-stream
//	@Produce		json
//	@Success		200	{object}	PersonaResponse
//	@Failure		400	{object}	map[string]string
//	@Failure		422	{object}	map[string]string
//	@Router			/personas/decode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDecodeBody))
	if err != nil {
		sendError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	record, err := s.codec.Decode(body)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, codec.ErrUnsupportedVersion) {
			// Well-formed, just newer than this decoder
			status = http.StatusUnprocessableEntity
		}
		sendError(w, fmt.Sprintf("%s: %v", decodeErrorClass(err), err), status)
		return
	}

	sendSuccess(w, toResponse(record))
}

// handleStats godoc
//
//	@Summary		Get log statistics
//	@Description	Get record count and data size of the persona log
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	store.LogStats
//	@Router			/stats [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.log.Stats()
	if s.metrics != nil {
		s.metrics.UpdateLogStats(stats.Records, stats.DataSize)
	}
	sendSuccess(w, stats)
}

func (s *Server) recordLogOperation(operation string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordLogOperation(operation, success, time.Since(start))
	}
}

// decodeErrorClass names the decode failure class for API clients.
func decodeErrorClass(err error) string {
	switch {
	case errors.Is(err, codec.ErrUnsupportedVersion):
		return "unsupported_version"
	case errors.Is(err, codec.ErrUnknownFormat):
		return "unknown_format"
	case errors.Is(err, codec.ErrMalformedField):
		return "malformed_field"
	case errors.Is(err, codec.ErrTruncatedInput):
		return "truncated_input"
	default:
		return "decode_error"
	}
}

// startMetricsUpdater periodically refreshes log gauges
func (s *Server) startMetricsUpdater() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := s.log.Stats()
		if s.metrics != nil {
			s.metrics.UpdateLogStats(stats.Records, stats.DataSize)
		}
	}
}

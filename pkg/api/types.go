package api

import (
	"github.com/Judith-olmand/persona/pkg/codec"
	"github.com/Judith-olmand/persona/pkg/store"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PersonaRequest is the JSON body for creating a persona record
type PersonaRequest struct {
	Name string `json:"name"`
	Age  int32  `json:"age"`
}

// PersonaResponse is the JSON form of a decoded persona record
type PersonaResponse struct {
	Name string `json:"name"`
	Age  int32  `json:"age"`
}

// AppendResult reports where a record landed in the log
type AppendResult struct {
	Offset int64 `json:"offset"`
	Size   int   `json:"size"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port    int
	Bind    string
	APIKey  string
	DataDir string
}

// IPersonaLog defines the log operations the API needs
type IPersonaLog interface {
	Append(record codec.Record) (int64, error)
	List() ([]codec.Record, error)
	Last() (codec.Record, error)
	Stats() *store.LogStats
}

func toResponse(record codec.Record) PersonaResponse {
	return PersonaResponse{Name: record.Name, Age: record.Age}
}

// Package a2a implements the Agent-to-Agent (A2A) messaging protocol for
// the chicken food safety service: a fixed JSON envelope exchanged over
// HTTP request/response, paired via correlation IDs.
package a2a

import (
	"encoding/json"
	"fmt"

	"github.com/kadirpekel/coopcheck/safety"
)

// ProtocolVersion is the only envelope version this implementation accepts
const ProtocolVersion = "1.0"

// ServiceName identifies the single service exposed over the protocol
const ServiceName = "chicken_food_safety_check"

// ============================================================================
// ENVELOPE - Outer structure wrapping every message
// ============================================================================

// MessageType distinguishes the three envelope kinds
type MessageType string

const (
	MessageTypeRequest  MessageType = "request"
	MessageTypeResponse MessageType = "response"
	MessageTypeError    MessageType = "error"
)

// AgentInfo identifies a message sender or recipient
type AgentInfo struct {
	AgentID string `json:"agent_id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// Envelope is the outer JSON structure wrapping every A2A message.
// Timestamps are RFC 3339 strings on the wire. CorrelationID is set on
// responses and errors only and echoes the originating request's ID.
type Envelope struct {
	Version       string          `json:"version"`
	ID            string          `json:"id"`
	Timestamp     string          `json:"timestamp"`
	Type          MessageType     `json:"type"`
	Sender        AgentInfo       `json:"sender"`
	Recipient     *AgentInfo      `json:"recipient,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// ============================================================================
// PAYLOADS - Service-specific inner JSON
// ============================================================================

// RequestPayload is the payload carried by request envelopes
type RequestPayload struct {
	Service  string `json:"service"`
	FoodItem string `json:"food_item"`
}

// ResponsePayload is the payload carried by response and error envelopes.
// Exactly one of Result or Error is set.
type ResponsePayload struct {
	Success bool           `json:"success"`
	Service string         `json:"service"`
	Result  *safety.Result `json:"result,omitempty"`
	Error   *ErrorInfo     `json:"error,omitempty"`
}

// ErrorInfo describes a failed request inside an error envelope
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes used in error envelopes
const (
	ErrorCodeInvalidRequest = "INVALID_REQUEST"
	ErrorCodeUnknownService = "UNKNOWN_SERVICE"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)

// ============================================================================
// SERVICE DISCOVERY
// ============================================================================

// ServiceDirectory is the document served from the discovery endpoint
type ServiceDirectory struct {
	Services []ServiceInfo `json:"services"`
}

// ServiceInfo describes one service in the directory
type ServiceInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Endpoint    string         `json:"endpoint"`
	Method      string         `json:"method"`
	InputSchema map[string]any `json:"input_schema"`
}

// HealthStatus is the document served from the health endpoint
type HealthStatus struct {
	Status string `json:"status"`
}

// ============================================================================
// ERRORS
// ============================================================================

// ValidationError reports a missing or malformed envelope field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// UnknownServiceError reports a request for a service this agent does not provide
type UnknownServiceError struct {
	Service string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service requested: %q", e.Service)
}

// ServiceError is a client-side error carrying the code and message from an
// error envelope returned by the server
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error %s: %s", e.Code, e.Message)
}

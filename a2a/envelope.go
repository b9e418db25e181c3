package a2a

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// ENVELOPE BUILDERS
// ============================================================================

// newEnvelope assembles the common envelope fields: fresh ID, UTC timestamp
func newEnvelope(msgType MessageType, sender AgentInfo, recipient *AgentInfo, payload any) (*Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		Version:   ProtocolVersion,
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Type:      msgType,
		Sender:    sender,
		Recipient: recipient,
		Payload:   raw,
	}, nil
}

// NewRequest builds a request envelope asking for a food safety check
func NewRequest(sender AgentInfo, recipient *AgentInfo, foodItem string) (*Envelope, error) {
	return newEnvelope(MessageTypeRequest, sender, recipient, RequestPayload{
		Service:  ServiceName,
		FoodItem: foodItem,
	})
}

// BuildResponse builds a response envelope correlated to the given request ID
func BuildResponse(requestID string, sender AgentInfo, recipient *AgentInfo, payload ResponsePayload) (*Envelope, error) {
	env, err := newEnvelope(MessageTypeResponse, sender, recipient, payload)
	if err != nil {
		return nil, err
	}
	env.CorrelationID = requestID
	return env, nil
}

// BuildError builds an error envelope correlated to the given request ID.
// The request ID may be empty when the request was too malformed to carry one.
func BuildError(requestID string, sender AgentInfo, recipient *AgentInfo, code, message string) *Envelope {
	env, err := newEnvelope(MessageTypeError, sender, recipient, ResponsePayload{
		Success: false,
		Service: ServiceName,
		Error:   &ErrorInfo{Code: code, Message: message},
	})
	if err != nil {
		// ResponsePayload always marshals; guard anyway
		env = &Envelope{
			Version:   ProtocolVersion,
			ID:        uuid.New().String(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Type:      MessageTypeError,
			Sender:    sender,
			Recipient: recipient,
		}
	}
	env.CorrelationID = requestID
	return env
}

// ============================================================================
// VALIDATION
// ============================================================================

// ValidateRequest decodes and validates a raw request envelope.
//
// On success it returns the envelope and its decoded request payload. On
// failure it returns a *ValidationError or *UnknownServiceError; the envelope
// is still returned when it decoded far enough to carry an ID, so callers can
// correlate their error envelope to the request.
func ValidateRequest(raw []byte) (*Envelope, *RequestPayload, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, nil, &ValidationError{Field: "envelope", Reason: "body is not valid JSON"}
	}

	if env.Version == "" {
		return &env, nil, &ValidationError{Field: "version", Reason: "missing required field"}
	}
	if env.Version != ProtocolVersion {
		return &env, nil, &ValidationError{Field: "version", Reason: "unsupported protocol version: " + env.Version}
	}
	if env.ID == "" {
		return &env, nil, &ValidationError{Field: "id", Reason: "missing required field"}
	}
	if env.Timestamp == "" {
		return &env, nil, &ValidationError{Field: "timestamp", Reason: "missing required field"}
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		return &env, nil, &ValidationError{Field: "timestamp", Reason: "not a valid RFC 3339 timestamp"}
	}
	if env.Type == "" {
		return &env, nil, &ValidationError{Field: "type", Reason: "missing required field"}
	}
	if env.Type != MessageTypeRequest {
		return &env, nil, &ValidationError{Field: "type", Reason: "message type must be \"request\""}
	}
	if env.Sender.AgentID == "" {
		return &env, nil, &ValidationError{Field: "sender.agent_id", Reason: "missing required field"}
	}
	if len(env.Payload) == 0 {
		return &env, nil, &ValidationError{Field: "payload", Reason: "missing required field"}
	}

	var payload RequestPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		return &env, nil, &ValidationError{Field: "payload", Reason: "payload is not a valid JSON object"}
	}
	if payload.Service == "" {
		return &env, nil, &ValidationError{Field: "payload.service", Reason: "missing required field"}
	}
	if payload.Service != ServiceName {
		return &env, nil, &UnknownServiceError{Service: payload.Service}
	}

	return &env, &payload, nil
}

// ValidateResponse checks a response envelope against the originating
// request ID. Used by the client before trusting a server reply.
func ValidateResponse(env *Envelope, requestID string) error {
	if env.Version == "" {
		return &ValidationError{Field: "version", Reason: "missing required field"}
	}
	if env.ID == "" {
		return &ValidationError{Field: "id", Reason: "missing required field"}
	}
	if env.Timestamp == "" {
		return &ValidationError{Field: "timestamp", Reason: "missing required field"}
	}
	if env.Type != MessageTypeResponse && env.Type != MessageTypeError {
		return &ValidationError{Field: "type", Reason: "message type must be \"response\" or \"error\""}
	}
	if env.CorrelationID != requestID {
		return &ValidationError{Field: "correlation_id", Reason: "does not match request id"}
	}
	if len(env.Payload) == 0 {
		return &ValidationError{Field: "payload", Reason: "missing required field"}
	}
	return nil
}

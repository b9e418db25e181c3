package a2a

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSender = AgentInfo{
	AgentID: "test-client",
	Name:    "Test Client",
	Version: "1.0",
}

var testRecipient = AgentInfo{
	AgentID: "chicken-food-safety-service",
	Name:    "Chicken Food Safety Service",
}

func TestNewRequest(t *testing.T) {
	env, err := NewRequest(testSender, &testRecipient, "corn")
	require.NoError(t, err)

	assert.Equal(t, ProtocolVersion, env.Version)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, MessageTypeRequest, env.Type)
	assert.Equal(t, testSender, env.Sender)
	assert.Empty(t, env.CorrelationID)

	_, err = time.Parse(time.RFC3339, env.Timestamp)
	assert.NoError(t, err, "timestamp must be RFC 3339")

	var payload RequestPayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.Equal(t, ServiceName, payload.Service)
	assert.Equal(t, "corn", payload.FoodItem)
}

func TestNewRequest_UniqueIDs(t *testing.T) {
	first, err := NewRequest(testSender, nil, "corn")
	require.NoError(t, err)
	second, err := NewRequest(testSender, nil, "corn")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestBuildResponse_CorrelationRoundTrip(t *testing.T) {
	request, err := NewRequest(testSender, &testRecipient, "corn")
	require.NoError(t, err)

	response, err := BuildResponse(request.ID, testRecipient, &request.Sender, ResponsePayload{
		Success: true,
		Service: ServiceName,
	})
	require.NoError(t, err)

	assert.Equal(t, request.ID, response.CorrelationID)
	assert.Equal(t, MessageTypeResponse, response.Type)
	assert.NotEqual(t, request.ID, response.ID)
}

func TestBuildError(t *testing.T) {
	env := BuildError("req-1", testRecipient, &testSender, ErrorCodeInvalidRequest, "missing field")

	assert.Equal(t, MessageTypeError, env.Type)
	assert.Equal(t, "req-1", env.CorrelationID)

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.False(t, payload.Success)
	assert.Nil(t, payload.Result)
	require.NotNil(t, payload.Error)
	assert.Equal(t, ErrorCodeInvalidRequest, payload.Error.Code)
	assert.Equal(t, "missing field", payload.Error.Message)
}

// validRequestJSON builds a well-formed request and lets the test mutate it
func validRequestJSON(t *testing.T, mutate func(map[string]any)) []byte {
	t.Helper()

	env, err := NewRequest(testSender, &testRecipient, "corn")
	require.NoError(t, err)
	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	if mutate != nil {
		mutate(doc)
	}

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	return out
}

func TestValidateRequest_Valid(t *testing.T) {
	env, payload, err := ValidateRequest(validRequestJSON(t, nil))
	require.NoError(t, err)
	require.NotNil(t, env)
	require.NotNil(t, payload)
	assert.Equal(t, "corn", payload.FoodItem)
}

func TestValidateRequest_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
	}{
		{
			name:      "missing version",
			mutate:    func(doc map[string]any) { delete(doc, "version") },
			wantField: "version",
		},
		{
			name:      "unsupported version",
			mutate:    func(doc map[string]any) { doc["version"] = "2.0" },
			wantField: "version",
		},
		{
			name:      "missing id",
			mutate:    func(doc map[string]any) { doc["id"] = "" },
			wantField: "id",
		},
		{
			name:      "missing timestamp",
			mutate:    func(doc map[string]any) { delete(doc, "timestamp") },
			wantField: "timestamp",
		},
		{
			name:      "malformed timestamp",
			mutate:    func(doc map[string]any) { doc["timestamp"] = "yesterday" },
			wantField: "timestamp",
		},
		{
			name:      "wrong type",
			mutate:    func(doc map[string]any) { doc["type"] = "response" },
			wantField: "type",
		},
		{
			name:      "missing sender agent_id",
			mutate:    func(doc map[string]any) { doc["sender"] = map[string]any{"name": "nameless"} },
			wantField: "sender.agent_id",
		},
		{
			name:      "missing payload",
			mutate:    func(doc map[string]any) { delete(doc, "payload") },
			wantField: "payload",
		},
		{
			name:      "missing service",
			mutate:    func(doc map[string]any) { doc["payload"] = map[string]any{"food_item": "corn"} },
			wantField: "payload.service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateRequest(validRequestJSON(t, tt.mutate))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Reason)
		})
	}
}

func TestValidateRequest_UnknownService(t *testing.T) {
	raw := validRequestJSON(t, func(doc map[string]any) {
		doc["payload"] = map[string]any{"service": "weather_forecast", "food_item": "corn"}
	})

	env, _, err := ValidateRequest(raw)
	require.Error(t, err)

	var serr *UnknownServiceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, "weather_forecast", serr.Service)
	// The envelope still decodes, so the error can be correlated
	require.NotNil(t, env)
	assert.NotEmpty(t, env.ID)
}

func TestValidateRequest_MalformedJSON(t *testing.T) {
	env, payload, err := ValidateRequest([]byte("{not json"))
	require.Error(t, err)
	assert.Nil(t, env)
	assert.Nil(t, payload)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "envelope", verr.Field)
}

func TestValidateResponse(t *testing.T) {
	request, err := NewRequest(testSender, &testRecipient, "corn")
	require.NoError(t, err)

	response, err := BuildResponse(request.ID, testRecipient, &request.Sender, ResponsePayload{
		Success: true,
		Service: ServiceName,
	})
	require.NoError(t, err)

	assert.NoError(t, ValidateResponse(response, request.ID))

	// Correlation mismatch is rejected
	err = ValidateResponse(response, "some-other-id")
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "correlation_id", verr.Field)
}

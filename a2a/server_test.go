package a2a

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/coopcheck/safety"
)

func newTestServer(t *testing.T, enableMetrics bool) *Server {
	t.Helper()

	return NewServer(&ServerConfig{
		Host: "127.0.0.1",
		Port: 8080,
		Agent: AgentInfo{
			AgentID: "chicken-food-safety-service",
			Name:    "Chicken Food Safety Service",
			Version: "1.0",
		},
		EnableMetrics: enableMetrics,
	}, safety.NewChecker(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// postCheck posts a raw body to the check endpoint and decodes the envelope
func postCheck(t *testing.T, handler http.Handler, body []byte) (*httptest.ResponseRecorder, *Envelope, *ResponsePayload) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, CheckEndpoint, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(env.Payload, &payload))

	return rec, &env, &payload
}

func TestServer_HandleCheck_Safe(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	request, err := NewRequest(testSender, &testRecipient, "CORN")
	require.NoError(t, err)
	body, err := json.Marshal(request)
	require.NoError(t, err)

	rec, env, payload := postCheck(t, handler, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MessageTypeResponse, env.Type)
	assert.Equal(t, request.ID, env.CorrelationID)
	assert.Equal(t, "chicken-food-safety-service", env.Sender.AgentID)
	require.NotNil(t, env.Recipient)
	assert.Equal(t, testSender.AgentID, env.Recipient.AgentID)

	assert.True(t, payload.Success)
	assert.Equal(t, ServiceName, payload.Service)
	require.NotNil(t, payload.Result)
	assert.Equal(t, safety.StatusSafe, payload.Result.Status)
	require.NotNil(t, payload.Result.IsSafe)
	assert.True(t, *payload.Result.IsSafe)
	assert.Equal(t, "corn is safe for chickens to eat.", payload.Result.Message)
}

func TestServer_HandleCheck_Unsafe(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	request, err := NewRequest(testSender, &testRecipient, "chocolate")
	require.NoError(t, err)
	body, err := json.Marshal(request)
	require.NoError(t, err)

	rec, _, payload := postCheck(t, handler, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, payload.Result)
	assert.Equal(t, safety.StatusUnsafe, payload.Result.Status)
	require.NotNil(t, payload.Result.IsSafe)
	assert.False(t, *payload.Result.IsSafe)
}

func TestServer_HandleCheck_UnknownFood(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	request, err := NewRequest(testSender, &testRecipient, "xyz123")
	require.NoError(t, err)
	body, err := json.Marshal(request)
	require.NoError(t, err)

	rec, _, payload := postCheck(t, handler, body)

	// Unknown foods are a valid outcome, not an error
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, payload.Success)
	require.NotNil(t, payload.Result)
	assert.Equal(t, safety.StatusUnknown, payload.Result.Status)
	assert.Nil(t, payload.Result.IsSafe)

	// is_safe is serialized as an explicit null
	raw, err := json.Marshal(payload.Result)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	val, present := doc["is_safe"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestServer_HandleCheck_MissingSenderAgentID(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	body := validRequestJSON(t, func(doc map[string]any) {
		doc["sender"] = map[string]any{"name": "nameless"}
	})

	rec, env, payload := postCheck(t, handler, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MessageTypeError, env.Type)
	assert.False(t, payload.Success)
	require.NotNil(t, payload.Error)
	assert.Equal(t, ErrorCodeInvalidRequest, payload.Error.Code)
	assert.Contains(t, payload.Error.Message, "sender.agent_id")
}

func TestServer_HandleCheck_UnknownService(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	body := validRequestJSON(t, func(doc map[string]any) {
		doc["payload"] = map[string]any{"service": "weather_forecast", "food_item": "corn"}
	})

	rec, env, payload := postCheck(t, handler, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MessageTypeError, env.Type)
	require.NotNil(t, payload.Error)
	assert.Equal(t, ErrorCodeUnknownService, payload.Error.Code)
	// Error envelope is still correlated to the request
	assert.NotEmpty(t, env.CorrelationID)
}

func TestServer_HandleCheck_WhitespaceFoodItem(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	body := validRequestJSON(t, func(doc map[string]any) {
		doc["payload"] = map[string]any{"service": ServiceName, "food_item": "   "}
	})

	rec, env, payload := postCheck(t, handler, body)

	// Whitespace-only food names are a validation error, not an unknown food
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MessageTypeError, env.Type)
	require.NotNil(t, payload.Error)
	assert.Equal(t, ErrorCodeInvalidRequest, payload.Error.Code)
	assert.Contains(t, payload.Error.Message, "payload.food_item")
}

func TestServer_HandleCheck_MalformedJSON(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	rec, env, payload := postCheck(t, handler, []byte("{not json"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MessageTypeError, env.Type)
	assert.Empty(t, env.CorrelationID)
	require.NotNil(t, payload.Error)
	assert.Equal(t, ErrorCodeInvalidRequest, payload.Error.Code)
}

func TestServer_HandleDiscovery(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	req := httptest.NewRequest(http.MethodGet, DiscoveryEndpoint, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var directory ServiceDirectory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &directory))
	require.Len(t, directory.Services, 1)
	assert.Equal(t, ServiceName, directory.Services[0].Name)
	assert.Equal(t, CheckEndpoint, directory.Services[0].Endpoint)
	assert.Equal(t, http.MethodPost, directory.Services[0].Method)
	assert.Contains(t, directory.Services[0].InputSchema, "properties")
}

func TestServer_HandleHealth(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	req := httptest.NewRequest(http.MethodGet, HealthEndpoint, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_MetricsEndpoint(t *testing.T) {
	handler := newTestServer(t, true).Handler()

	// Generate one classification so the counter exists
	request, err := NewRequest(testSender, &testRecipient, "corn")
	require.NoError(t, err)
	body, err := json.Marshal(request)
	require.NoError(t, err)
	postCheck(t, handler, body)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "coopcheck_classifications_total"))
}

func TestServer_MetricsDisabled(t *testing.T) {
	handler := newTestServer(t, false).Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

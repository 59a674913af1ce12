package verification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"form-relay/internal/common/logger"
	"form-relay/internal/common/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fake assessment API
// ==========================

type fakeAPI struct {
	server *httptest.Server
	calls  atomic.Int32

	mu      sync.Mutex
	lastReq map[string]interface{}
	lastURL string
}

func (f *fakeAPI) last() (string, map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastURL, f.lastReq
}

func newFakeAPI(t *testing.T, status int, response string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		raw, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.lastURL = r.URL.String()
		_ = json.Unmarshal(raw, &f.lastReq)
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func createValidSettings(endpoint string) Settings {
	return Settings{
		APIKey:    "api-key",
		SiteKey:   "site-key",
		ProjectID: "test-project",
		Endpoint:  endpoint,
	}
}

func newTestClient(t *testing.T, settings Settings) *Client {
	t.Helper()
	client, err := NewClient(context.Background(), settings, logger.NewTestLogger(t))
	require.NoError(t, err)
	return client
}

// ==========================
// Decision Tests
// ==========================

func TestClient_Verify_Decisions(t *testing.T) {
	tests := []struct {
		name     string
		action   string
		status   int
		response string
		want     Outcome
	}{
		{
			name:     "valid token, matching action, high score",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":true,"action":"contact"},"riskAnalysis":{"score":0.9}}`,
			want:     Outcome{Valid: true},
		},
		{
			name:     "score exactly at threshold passes",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":true,"action":"contact"},"riskAnalysis":{"score":0.5}}`,
			want:     Outcome{Valid: true},
		},
		{
			name:     "score just below threshold fails",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":true,"action":"contact"},"riskAnalysis":{"score":0.49}}`,
			want:     Outcome{Reason: ReasonLowScore},
		},
		{
			name:     "missing score defaults to zero",
			action:   "join_us",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":true,"action":"join_us"}}`,
			want:     Outcome{Reason: ReasonLowScore},
		},
		{
			name:     "invalid token",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":false,"invalidReason":"EXPIRED","action":"contact"},"riskAnalysis":{"score":0.9}}`,
			want:     Outcome{Reason: ReasonInvalidToken},
		},
		{
			name:     "absent token properties",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"riskAnalysis":{"score":0.9}}`,
			want:     Outcome{Reason: ReasonInvalidToken},
		},
		{
			name:     "invalid token wins over action mismatch and low score",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":false,"action":"join_us"},"riskAnalysis":{"score":0.1}}`,
			want:     Outcome{Reason: ReasonInvalidToken},
		},
		{
			name:     "action mismatch wins over low score",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":{"valid":true,"action":"join_us"},"riskAnalysis":{"score":0.1}}`,
			want:     Outcome{Reason: ReasonActionMismatch},
		},
		{
			name:     "non-2xx response",
			action:   "contact",
			status:   http.StatusForbidden,
			response: `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`,
			want:     Outcome{Reason: ReasonUnavailable},
		},
		{
			name:     "server error",
			action:   "contact",
			status:   http.StatusInternalServerError,
			response: `oops`,
			want:     Outcome{Reason: ReasonUnavailable},
		},
		{
			name:     "malformed body",
			action:   "contact",
			status:   http.StatusOK,
			response: `{"tokenProperties":`,
			want:     Outcome{Reason: ReasonUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, tt.status, tt.response)
			client := newTestClient(t, createValidSettings(api.server.URL+"/"))

			got, err := client.Verify(context.Background(), "token-abc", tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, int32(1), api.calls.Load(), "exactly one assessment call, no retries")
		})
	}
}

func TestClient_Verify_RequestShape(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"tokenProperties":{"valid":true,"action":"join_us"},"riskAnalysis":{"score":0.7}}`)
	client := newTestClient(t, createValidSettings(api.server.URL+"/"))

	_, err := client.Verify(context.Background(), "token-xyz", "join_us")
	require.NoError(t, err)

	lastURL, lastReq := api.last()
	assert.Contains(t, lastURL, "/v1/projects/test-project/assessments")
	assert.Contains(t, lastURL, "key=api-key")

	event, ok := lastReq["event"].(map[string]interface{})
	require.True(t, ok, "payload must carry an event object")
	assert.Equal(t, "token-xyz", event["token"])
	assert.Equal(t, "site-key", event["siteKey"])
	assert.Equal(t, "join_us", event["expectedAction"])
}

// ==========================
// Precondition Tests
// ==========================

func TestClient_Verify_MissingConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		settings func(Settings) Settings
	}{
		{"no api key", func(s Settings) Settings { s.APIKey = ""; return s }},
		{"no site key", func(s Settings) Settings { s.SiteKey = ""; return s }},
		{"no project", func(s Settings) Settings { s.ProjectID = ""; return s }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(t, http.StatusOK, `{}`)
			client := newTestClient(t, tt.settings(createValidSettings(api.server.URL+"/")))

			got, err := client.Verify(context.Background(), "token", "contact")
			require.NoError(t, err)
			assert.Equal(t, Outcome{Reason: ReasonConfiguration}, got)
			assert.Equal(t, int32(0), api.calls.Load(), "no outbound call when misconfigured")
		})
	}
}

func TestClient_Verify_CallerErrors(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	client := newTestClient(t, createValidSettings(api.server.URL+"/"))

	_, err := client.Verify(context.Background(), "", "contact")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = client.Verify(context.Background(), "token", "")
	assert.ErrorIs(t, err, ErrMissingAction)

	assert.Equal(t, int32(0), api.calls.Load())
}

func TestClient_Verify_NetworkFailure(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	endpoint := api.server.URL + "/"
	api.server.Close()

	client := newTestClient(t, createValidSettings(endpoint))
	got, err := client.Verify(context.Background(), "token", "contact")
	require.NoError(t, err)
	assert.Equal(t, Outcome{Reason: ReasonUnavailable}, got)
}

func TestClient_Verify_RecordsMetric(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"tokenProperties":{"valid":true,"action":"metrics_action"},"riskAnalysis":{"score":0.2}}`)
	client := newTestClient(t, createValidSettings(api.server.URL+"/"))

	counter := metrics.VerificationsTotal.WithLabelValues("metrics_action", resultLowScore)
	before := testutil.ToFloat64(counter)

	_, err := client.Verify(context.Background(), "token", "metrics_action")
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestSettings_Complete(t *testing.T) {
	assert.True(t, createValidSettings("").Complete())
	assert.False(t, Settings{}.Complete())
}

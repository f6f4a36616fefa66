package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"tripsync/internal/models/request_models"
	"tripsync/internal/models/response_models"
	"tripsync/internal/services"
	"tripsync/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeTripService struct {
	got    request_models.PreferenceRequest
	result *services.TripResult
	err    error
}

func (f *fakeTripService) GenerateTrips(_ context.Context, req request_models.PreferenceRequest) (*services.TripResult, error) {
	f.got = req
	return f.result, f.err
}

type fakeImageService struct{}

func (fakeImageService) ImageURL(_ context.Context, destination, activity, id string) response_models.ImageURLResponse {
	return response_models.ImageURLResponse{
		ImageURL: utils.FallbackImageURL(destination, activity, id),
		Source:   services.ImageSourceFallback,
	}
}

type fakeChatService struct {
	reply string
	err   error
}

func (f fakeChatService) Reply(context.Context, string) (string, error) { return f.reply, f.err }

func newTestRouter(t *testing.T, trips services.TripServiceInterface, chat services.ChatServiceInterface) *gin.Engine {
	t.Helper()
	logger := zaptest.NewLogger(t)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("trace_id", "trace-123")
		c.Next()
	})

	tc := NewTripController(trips, 4, 10, logger)
	ic := NewImageController(fakeImageService{})
	cc := NewChatController(chat, logger)
	hc := NewHealthController()

	r.POST("/api/generate-trip", tc.GenerateTripHandler)
	r.GET("/api/get-image-url", ic.GetImageURLHandler)
	r.POST("/api/chat", cc.ChatHandler)
	r.GET("/health", hc.HealthHandler)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGenerateTrip_Success(t *testing.T) {
	svc := &fakeTripService{result: &services.TripResult{
		Trips:  []response_models.TripCandidate{{ID: "t1", Destination: "Tokyo, Japan"}},
		Cached: true,
	}}
	r := newTestRouter(t, svc, fakeChatService{})

	w := do(r, http.MethodPost, "/api/generate-trip",
		`{"budget":"20","travelStyle":30,"destination":"  Tokyo, Japan ","startDate":"06/01/2026","endDate":"06/05/2026","maxResults":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["cached"])
	assert.Len(t, body["trips"], 1)

	assert.Equal(t, 20, svc.got.Budget)
	assert.Equal(t, 30, svc.got.TravelStyle)
	assert.Equal(t, 50, svc.got.Planning)
	assert.Equal(t, "Tokyo, Japan", svc.got.Destination)
	assert.Equal(t, 3, svc.got.MaxResults)
}

func TestGenerateTrip_EmptyBodyUsesDefaults(t *testing.T) {
	svc := &fakeTripService{result: &services.TripResult{Trips: []response_models.TripCandidate{}}}
	r := newTestRouter(t, svc, fakeChatService{})

	w := do(r, http.MethodPost, "/api/generate-trip", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"trips":[],"cached":false}`, w.Body.String())
	assert.Equal(t, 4, svc.got.MaxResults)
	assert.Equal(t, 50, svc.got.Budget)
}

func TestGenerateTrip_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"slider out of range", `{"budget":150}`},
		{"negative slider string", `{"planning":"-3"}`},
		{"slider garbage", `{"travelStyle":"lots"}`},
		{"too many results", `{"maxResults":11}`},
		{"zero results", `{"maxResults":0}`},
		{"malformed json", `{"budget":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTripService{}
			r := newTestRouter(t, svc, fakeChatService{})

			w := do(r, http.MethodPost, "/api/generate-trip", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			body := decode(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "invalid_request", body["kind"])
			assert.Equal(t, "trace-123", body["traceId"])
		})
	}
}

func TestGenerateTrip_PipelineErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		wantRaw string
	}{
		{"timeout", utils.NewGenerationError(utils.ErrUpstreamTimeout, "", context.DeadlineExceeded), http.StatusGatewayTimeout, "upstream_timeout", ""},
		{"no text", utils.NewGenerationError(utils.ErrNoTextualOutput, "", nil), http.StatusBadGateway, "no_text_output", ""},
		{"parse", utils.NewGenerationError(utils.ErrExtractionFailed, "not json", nil), http.StatusBadGateway, "parse_failure", "not json"},
		{"schema echo", utils.NewGenerationError(utils.ErrSchemaEcho, `{"type":"object"}`, nil), http.StatusBadGateway, "schema_echo", `{"type":"object"}`},
		{"upstream", utils.NewGenerationError(utils.ErrUpstreamFailure, "", nil), http.StatusBadGateway, "upstream_failure", ""},
		{"unknown", assert.AnError, http.StatusInternalServerError, "internal", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, &fakeTripService{err: tt.err}, fakeChatService{})

			w := do(r, http.MethodPost, "/api/generate-trip", `{}`)
			require.Equal(t, tt.status, w.Code)

			body := decode(t, w)
			assert.Equal(t, tt.kind, body["kind"])
			if tt.wantRaw == "" {
				assert.NotContains(t, body, "raw")
			} else {
				assert.Equal(t, tt.wantRaw, body["raw"])
			}
		})
	}
}

func TestGetImageURL(t *testing.T) {
	r := newTestRouter(t, &fakeTripService{}, fakeChatService{})

	w := do(r, http.MethodGet, "/api/get-image-url?destination=Tokyo&activity=sushi&id=t1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, utils.FallbackImageURL("Tokyo", "sushi", "t1"), body["imageUrl"])
	assert.Equal(t, "fallback", body["source"])

	missing := do(r, http.MethodGet, "/api/get-image-url?activity=sushi", "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestChat(t *testing.T) {
	r := newTestRouter(t, &fakeTripService{}, fakeChatService{reply: "Go to Lisbon."})

	w := do(r, http.MethodPost, "/api/chat", `{"message":"where to?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"response":"Go to Lisbon."}`, w.Body.String())

	bad := do(r, http.MethodPost, "/api/chat", `{}`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	failing := newTestRouter(t, &fakeTripService{}, fakeChatService{err: utils.NewGenerationError(utils.ErrUpstreamFailure, "", nil)})
	assert.Equal(t, http.StatusBadGateway, do(failing, http.MethodPost, "/api/chat", `{"message":"hi"}`).Code)
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &fakeTripService{}, fakeChatService{})
	w := do(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","message":"Server is running"}`, w.Body.String())
}

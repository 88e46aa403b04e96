package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarshkumar7463/army-chatbot/internal/chatbot"
	"github.com/adarshkumar7463/army-chatbot/internal/export"
	"github.com/adarshkumar7463/army-chatbot/internal/log"
	"github.com/adarshkumar7463/army-chatbot/internal/records"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ctx := context.Background()

	store := records.NewMemoryStore()
	require.NoError(t, store.PutOfficer(ctx, records.Officer{
		ArmyNumber: "A1234B", FullName: "Arjun Singh", Rank: "Colonel",
		Unit: "5 Kashmir Rifles",
	}))

	exporter, err := export.New(t.TempDir(), "/exports/", log.NewNop())
	require.NoError(t, err)

	engine := chatbot.New(store, exporter, log.NewNop(), nil)
	return NewServer(engine, store, nil, exporter.Dir(), log.NewNop())
}

func TestServer_Routes(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"health", http.MethodGet, "/health", "", http.StatusOK},
		{"ready without pool", http.MethodGet, "/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"stats", http.MethodGet, "/api/v1/stats", "", http.StatusOK},
		{"chat", http.MethodPost, "/api/v1/chat", `{"message":"how many officers in kashmir"}`, http.StatusOK},
		{"chat wrong method", http.MethodGet, "/api/v1/chat", "", http.StatusMethodNotAllowed},
		{"unknown path", http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)
			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestServer_RecoversFromPanic(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	h := chain(mux, recoveryMiddleware(log.NewNop()), loggingMiddleware(log.NewNop()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

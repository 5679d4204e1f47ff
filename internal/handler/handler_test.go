package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"tour-admin/internal/dbtest"
	"tour-admin/internal/events"
	"tour-admin/internal/notifier"
	"tour-admin/internal/repository"
	"tour-admin/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.BookingEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type stubNotifier struct {
	name string
	err  error
	sent []string
}

func (s *stubNotifier) Name() string { return s.name }

func (s *stubNotifier) Send(_ context.Context, text string) error {
	s.sent = append(s.sent, text)
	return s.err
}

type testServer struct {
	router   *gin.Engine
	conn     *database.Conn
	events   *recordingPublisher
	telegram *stubNotifier
	line     *stubNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := dbtest.Open(t)
	pub := &recordingPublisher{}
	tg := &stubNotifier{name: "telegram"}
	line := &stubNotifier{name: "line", err: errors.New("line push: status 401")}

	router := NewRouter(Deps{
		Bookings:    repository.NewBookingRepository(conn.Gorm),
		Catalog:     repository.NewCatalogRepository(conn.Gorm),
		Prices:      repository.NewPriceRepository(conn.SQL),
		Settings:    repository.NewSettingsRepository(conn.Gorm),
		Events:      pub,
		Notifiers:   notifier.NewSet(tg, line),
		CompanyName: "Tour Admin",
		Timezone:    "Asia/Bangkok",
	})
	return &testServer{router: router, conn: conn, events: pub, telegram: tg, line: line}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

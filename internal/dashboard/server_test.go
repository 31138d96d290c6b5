package dashboard

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/session"
)

func init() { gin.SetMode(gin.TestMode) }

type fakeClient struct {
	client.CafeClient
	slots  []model.Slot
	leaves []model.LeaveRequest
	err    error
}

func (f *fakeClient) ListSlots(ctx context.Context, opts client.ListOptions) (*client.ListResult[model.Slot], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.ListResult[model.Slot]{Items: f.slots}, nil
}

func (f *fakeClient) ListLeaveRequests(ctx context.Context, opts client.ListOptions) (*client.ListResult[model.LeaveRequest], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &client.ListResult[model.LeaveRequest]{Items: f.leaves}, nil
}

func (f *fakeClient) Close() error { return nil }

type testServer struct {
	*Server
	fake     *fakeClient
	sessions []*session.Session
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{fake: &fakeClient{slots: []model.Slot{
		{ID: "1", DayOfWeek: model.Tuesday, StartTime: "09:00", Area: "Cat room"},
		{ID: "2", DayOfWeek: model.Monday, StartTime: "10:00", Area: "Dog yard"},
		{ID: "3", DayOfWeek: model.Monday, StartTime: "08:00", Area: "Cat room"},
	}}}
	ts.Server = NewServer(func(s *session.Session) client.CafeClient {
		ts.sessions = append(ts.sessions, s)
		return ts.fake
	}, Options{PageSize: 10, MaxPages: 3})
	return ts
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1", "role": role}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}
	return tok
}

func (ts *testServer) get(t *testing.T, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %s: %v", w.Body.String(), err)
	}
	return v
}

func TestHealth_RequestID(t *testing.T) {
	ts := newTestServer(t)

	w := ts.get(t, "/api/health", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health = %d %s", w.Code, w.Body.String())
	}
	if id := w.Header().Get(client.RequestIDHeader); !strings.HasPrefix(id, "req-") {
		t.Errorf("generated request id = %q", id)
	}

	w = ts.get(t, "/api/health", http.Header{client.RequestIDHeader: {"trace-123"}})
	if got := w.Header().Get(client.RequestIDHeader); got != "trace-123" {
		t.Errorf("echoed request id = %q", got)
	}
}

func TestListPages(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/api/pages", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decode[struct {
		Pages []pageInfo `json:"pages"`
	}](t, w)
	var slots *pageInfo
	for i := range body.Pages {
		if body.Pages[i].Name == "slots" {
			slots = &body.Pages[i]
		}
	}
	if slots == nil {
		t.Fatalf("slots page missing from %+v", body.Pages)
	}
	if slots.DefaultSort != "day_of_week,start_time" || len(slots.Columns) == 0 {
		t.Errorf("slots = %+v", slots)
	}
	if len(body.Pages) != 9 {
		t.Errorf("pages = %d, want 9", len(body.Pages))
	}
}

func TestGetPage_Slots(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/api/pages/slots?page_size=2", http.Header{"Authorization": {"Bearer " + token(t, "STAFF")}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	resp := decode[pageResponse](t, w)
	if resp.TotalItemsCount != 3 || resp.TotalPagesCount != 2 || !resp.HasNext || resp.HasPrevious {
		t.Errorf("pagination = %+v", resp.PageResult)
	}
	if len(resp.Items) != 2 || resp.Items[0].String("id") != "3" || resp.Items[1].String("id") != "2" {
		t.Errorf("items = %v", resp.Items)
	}
	if resp.Sort != "day_of_week,start_time" {
		t.Errorf("sort = %q", resp.Sort)
	}
	if len(resp.Counts) != 2 || resp.Counts[0].Value != "MONDAY" || resp.Counts[0].Count != 2 {
		t.Errorf("counts = %+v", resp.Counts)
	}

	if len(ts.sessions) != 1 || ts.sessions[0].Role != "STAFF" || ts.sessions[0].Token == "" {
		t.Errorf("forwarded sessions = %+v", ts.sessions)
	}
}

func TestGetPage_FilterAndClamp(t *testing.T) {
	ts := newTestServer(t)
	w := ts.get(t, "/api/pages/slots?f.area=cat&page=7", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body %s", w.Code, w.Body.String())
	}
	resp := decode[pageResponse](t, w)
	if resp.TotalItemsCount != 2 || resp.PageIndex != 0 {
		t.Errorf("result = %+v", resp.PageResult)
	}
}

func TestGetPage_Errors(t *testing.T) {
	staff := http.Header{"Authorization": {"Bearer " + token(t, "STAFF")}}
	for _, tc := range []struct {
		name   string
		path   string
		header http.Header
		err    error
		want   int
		msg    string
	}{
		{"UnknownPage", "/api/pages/invoices", nil, nil, http.StatusNotFound, ""},
		{"BadPage", "/api/pages/slots?page=two", nil, nil, http.StatusBadRequest, ""},
		{"UnknownFilter", "/api/pages/slots?f.colour=red", nil, nil, http.StatusBadRequest, ""},
		{"BadFilterValue", "/api/pages/slots?f.day=FUNDAY", nil, nil, http.StatusBadRequest, ""},
		{"BadAuthHeader", "/api/pages/slots", http.Header{"Authorization": {"Token abc"}}, nil, http.StatusUnauthorized, client.MsgUnauthorized},
		{"RoleNotAllowed", "/api/pages/leave-requests", staff, nil, http.StatusForbidden, client.MsgForbidden},
		{"UpstreamUnauthorized", "/api/pages/slots", nil, &client.APIError{StatusCode: 401, Message: "expired"}, http.StatusUnauthorized, client.MsgUnauthorized},
		{"UpstreamServerError", "/api/pages/slots", nil, &client.APIError{StatusCode: 500, Message: "db down"}, http.StatusBadGateway, client.MsgServer},
		{"Network", "/api/pages/slots", nil, errors.New("dial tcp: refused"), http.StatusBadGateway, client.MsgUnknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.fake.err = tc.err
			w := ts.get(t, tc.path, tc.header)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.want, w.Body.String())
			}
			body := decode[map[string]string](t, w)
			if body["error"] == "" {
				t.Errorf("missing error message: %s", w.Body.String())
			}
			if tc.msg != "" && body["error"] != tc.msg {
				t.Errorf("error = %q, want %q", body["error"], tc.msg)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	ts := newTestServer(t)
	ts.opts.CORSOrigins = []string{"http://admin.local"}

	req := httptest.NewRequest(http.MethodOptions, "/api/pages", nil)
	req.Header.Set("Origin", "http://admin.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://admin.local" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestMatchTopic(t *testing.T) {
	for _, tc := range []struct {
		pattern, topic string
		want           bool
	}{
		{"cafe.pet.created", "cafe.pet.created", true},
		{"cafe.pet.*", "cafe.pet.deleted", true},
		{"cafe.pet.*", "cafe.slot.deleted", false},
		{"cafe.>", "cafe.leave_request.approved", true},
		{"cafe.>", "cafe", false},
		{"cafe.*", "cafe.pet.created", false},
	} {
		if got := matchTopic(tc.pattern, tc.topic); got != tc.want {
			t.Errorf("matchTopic(%q, %q) = %v, want %v", tc.pattern, tc.topic, got, tc.want)
		}
	}
}

type chanSubscriber struct {
	ch chan []byte
}

func (s *chanSubscriber) Subscribe(string) (<-chan []byte, func(), error) {
	return s.ch, func() {}, nil
}

func (s *chanSubscriber) Close() error { return nil }

func TestRelay_Broadcasts(t *testing.T) {
	ts := newTestServer(t)
	sub := &chanSubscriber{ch: make(chan []byte, 4)}
	browser, _ := ts.hub.subscribe(nil, nil)
	defer ts.hub.unsubscribe(browser)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ts.Relay(ctx, sub) }()

	data, _ := json.Marshal(events.Change{Resource: events.ResourcePet, ID: "7", Action: events.ActionUpdated})
	sub.ch <- []byte("not json")
	sub.ch <- data

	select {
	case evt := <-browser.ch:
		if evt.Topic != "cafe.pet.updated" || evt.ID != 1 {
			t.Errorf("relayed = %d %q, want 1 cafe.pet.updated", evt.ID, evt.Topic)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("change was not relayed")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Relay returned %v", err)
	}
}

func TestEventStream_Replay(t *testing.T) {
	ts := newTestServer(t)
	ts.hub.broadcast("cafe.slot.created", []byte(`{"resource":"slot"}`))
	ts.hub.broadcast("cafe.pet.created", []byte(`{"resource":"pet"}`))

	srv := httptest.NewServer(ts.Handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events/stream?topics=cafe.pet.*", nil)
	req.Header.Set("Last-Event-ID", "0")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "event:") {
			if line != "event:cafe.pet.created" {
				t.Errorf("first replayed event = %q, want the pet change only", line)
			}
			return
		}
	}
	t.Fatalf("stream ended without an event: %v", scanner.Err())
}

func TestSSEHub_SubscribeReplaysOnce(t *testing.T) {
	hub := newSSEHub()
	hub.broadcast("cafe.pet.created", []byte(`1`))
	hub.broadcast("cafe.slot.created", []byte(`2`))
	hub.broadcast("cafe.pet.deleted", []byte(`3`))

	last := uint64(1)
	c, replay := hub.subscribe([]string{"cafe.pet.*"}, &last)
	defer hub.unsubscribe(c)
	if len(replay) != 1 || replay[0].ID != 3 {
		t.Fatalf("replay = %+v, want only event 3", replay)
	}
	select {
	case evt := <-c.ch:
		t.Fatalf("replayed event %d also arrived live", evt.ID)
	default:
	}

	hub.broadcast("cafe.pet.updated", []byte(`4`))
	select {
	case evt := <-c.ch:
		if evt.ID != 4 {
			t.Errorf("live event = %d, want 4", evt.ID)
		}
	default:
		t.Fatal("live event not delivered")
	}

	plain, none := hub.subscribe(nil, nil)
	defer hub.unsubscribe(plain)
	if none != nil {
		t.Errorf("replay without Last-Event-ID = %+v", none)
	}
}

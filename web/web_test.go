//go:build !tinygo

package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"fmradio/radio"
)

// fakeController applies intents synchronously to a Radio over a stub tuner.
type fakeController struct {
	mu      sync.Mutex
	st      radio.State
	intents []radio.Intent
	err     error
}

func newFakeController() *fakeController {
	st := radio.NewState()
	st.Power = true
	return &fakeController{st: st}
}

func (f *fakeController) Submit(ctx context.Context, in radio.Intent) (radio.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return radio.State{}, f.err
	}
	f.intents = append(f.intents, in)
	switch in {
	case radio.StepUp:
		f.st.Frequency = radio.NextChannel(f.st.Frequency)
	case radio.StepDown:
		f.st.Frequency = radio.PrevChannel(f.st.Frequency)
	case radio.TogglePower:
		f.st.Power = !f.st.Power
	}
	return f.st, nil
}

type lineLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLog) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestIntentRoutes(t *testing.T) {
	for _, r := range Routes {
		t.Run(r.Path, func(t *testing.T) {
			ctrl := newFakeController()
			s := New(ctrl, nil)
			rec := get(t, s, r.Path)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status %d", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != "/" {
				t.Fatalf("location %q", loc)
			}
			if len(ctrl.intents) != 1 || ctrl.intents[0] != r.Intent {
				t.Fatalf("intents %v", ctrl.intents)
			}
		})
	}
}

func TestRootPage(t *testing.T) {
	ctrl := newFakeController()
	s := New(ctrl, nil)
	get(t, s, "/up")
	get(t, s, "/up")

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"87.7 MHz", "Status: ON", `action="/seekup"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if got := ctrl.intents[len(ctrl.intents)-1]; got != radio.Refresh {
		t.Fatalf("root page submitted %v", got)
	}
}

func TestStatusJSON(t *testing.T) {
	ctrl := newFakeController()
	ctrl.st.RDS = radio.RDSInfo{ProgramService: "ROCK FM", ProgramID: 0xc204}
	s := New(ctrl, nil)

	rec := get(t, s, "/api/status")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var st radio.State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v\n%s", err, rec.Body.String())
	}
	if st.Frequency != 87.5 || !st.Power || st.RDS.ProgramService != "ROCK FM" {
		t.Fatalf("state %+v", st)
	}
}

func TestUnavailable(t *testing.T) {
	ctrl := newFakeController()
	ctrl.err = errors.New("app: stopped")
	s := New(ctrl, nil)
	for _, path := range []string{"/", "/up", "/api/status"} {
		rec := get(t, s, path)
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: status %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "app: stopped") {
			t.Fatalf("%s: body %s", path, rec.Body.String())
		}
	}
}

func TestAccessLog(t *testing.T) {
	log := &lineLog{}
	s := New(newFakeController(), log)
	get(t, s, "/toggle")
	if len(log.lines) != 1 {
		t.Fatalf("log lines %q", log.lines)
	}
	if line := log.lines[0]; !strings.Contains(line, "uri=/toggle") || !strings.Contains(line, "status=303") {
		t.Fatalf("log line %q", line)
	}
}

func TestUnknownRoute(t *testing.T) {
	if rec := get(t, New(newFakeController(), nil), "/nope"); rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}

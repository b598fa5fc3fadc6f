package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/kailas-cloud/companysearch/internal/logger"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := jsonRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/search", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "internal_error" {
		t.Errorf("body = %v", body)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("panic was not logged")
	}
}

func TestWideEventMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	var sawLogger bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logpkg.FromContext(r.Context()).Info("inside")
		sawLogger = true
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	})
	h := chiMiddleware.RequestID(wideEventMiddleware(zap.New(core))(inner))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/regions", http.NoBody))

	if !sawLogger {
		t.Fatal("handler not called")
	}
	reqID := rr.Header().Get("X-Request-ID")
	if reqID == "" {
		t.Fatal("X-Request-ID not set")
	}

	inside := logs.FilterMessage("inside").All()
	if len(inside) != 1 || inside[0].ContextMap()["request_id"] != reqID {
		t.Errorf("handler log lacks request id: %+v", inside)
	}

	lines := logs.FilterMessage("http_request").All()
	if len(lines) != 1 {
		t.Fatalf("got %d canonical lines", len(lines))
	}
	fields := lines[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/regions" {
		t.Errorf("fields = %v", fields)
	}
	if fields["response_bytes"] != int64(5) {
		t.Errorf("response_bytes = %v", fields["response_bytes"])
	}
}

func TestRegionsCommand(t *testing.T) {
	var out bytes.Buffer
	a := newApp()
	a.Writer = &out
	if err := a.Run([]string{"companysearch", "--env", "local", "regions"}); err != nil {
		t.Fatalf("regions: %v", err)
	}
	got := out.String()
	if !strings.HasPrefix(got, "ID") {
		t.Errorf("missing header: %q", got)
	}
	for _, want := range []string{"us", "United States", "en-US", "de-DE"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestLoadCommand_RequiresFile(t *testing.T) {
	a := newApp()
	a.Writer = &bytes.Buffer{}
	a.ExitErrHandler = func(*cli.Context, error) {}
	if err := a.Run([]string{"companysearch", "index", "load"}); err == nil {
		t.Fatal("expected usage error")
	}
}

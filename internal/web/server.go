// Package web serves the checker UI and a JSON API. It only formats
// checker.Result values; all scoring happens in the checker.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/AIAleph/fogo_early_checker/internal/checker"
	"github.com/AIAleph/fogo_early_checker/internal/logging"
)

//go:embed templates/index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Checker is the subset of *checker.Checker the server needs.
type Checker interface {
	Check(ctx context.Context, raw string) checker.Result
}

type server struct {
	c       Checker
	printer *message.Printer
}

// NewServer returns the UI and API handler tree.
func NewServer(c Checker) http.Handler {
	s := &server{c: c, printer: message.NewPrinter(language.English)}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/check", s.handleAPICheck)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return loggingMiddleware(mux)
}

// view is the template model. Empty fields are not rendered.
type view struct {
	Address   string
	Warning   string
	Checked   bool
	Failure   string
	Exists    string
	FirstSlot string
	JoinDate  string
	Tier      string
	Score     string
	Earlier   int
	Notice    string
}

func (s *server) render(res checker.Result) view {
	v := view{Checked: true}
	if !res.Exists {
		v.Failure = res.Error
		return v
	}
	if res.FirstSlot != nil {
		v.FirstSlot = s.printer.Sprintf("%d", *res.FirstSlot)
	}
	if res.JoinDate != nil {
		v.JoinDate = res.JoinDate.Format(time.DateOnly)
	}
	if res.Tier != nil {
		v.Tier = *res.Tier
	}
	if res.Score != nil {
		v.Score = strconv.FormatFloat(*res.Score, 'f', -1, 64)
		v.Earlier = int(*res.Score)
	}
	if res.Error != "" {
		v.Exists = "Wallet exists on Fogo testnet"
		v.Notice = res.Error
	}
	return v
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := view{}
	if q.Has("address") {
		addr := strings.TrimSpace(q.Get("address"))
		if addr == "" {
			v.Warning = "Please enter a wallet address."
		} else {
			v = s.render(s.c.Check(r.Context(), addr))
		}
		v.Address = addr
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, v); err != nil {
		logging.Logger().Error("render_failed", "component", "web", "error", err.Error())
	}
}

func (s *server) handleAPICheck(w http.ResponseWriter, r *http.Request) {
	addr := strings.TrimSpace(r.URL.Query().Get("address"))
	if addr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing address parameter"})
		return
	}
	writeJSON(w, http.StatusOK, s.c.Check(r.Context(), addr))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Logger().Info("http_request",
			"component", "web",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}

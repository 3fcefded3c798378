// Package webapi provides the HTTP API of the chat service: live message check, send gate, history,
// export and sender blocking.
package webapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"github.com/ashu-suve/chat/app/chat"
	"github.com/ashu-suve/chat/app/metrics"
	"github.com/ashu-suve/chat/app/storage"
)

//go:generate moq --out mocks/chat.go --pkg mocks --with-resets --skip-ensure . Chat

// ExportFileName is the file name of exported history
const ExportFileName = "spam_chat_export.json"

const (
	defaultRateLimit  = 50
	maxRequestSize    = 64 * 1024
	defaultSpamLimit  = 100
	authUser          = "chat"
	concurrencyLimit  = 1000
	serverReadTimeout = 5 * time.Second
)

// Server is a web API server.
type Server struct {
	Config
}

// Config defines server parameters
type Config struct {
	Version    string  // version to show in /ping
	ListenAddr string  // listen address
	Chat       Chat    // chat service
	AuthPasswd string  // basic auth password for user "chat", no auth if empty
	RateLimit  float64 // max requests per second from a single ip
	Dbg        bool    // debug mode
}

// Chat is the chat service interface.
type Chat interface {
	Preview(text string) chat.Preview
	Send(ctx context.Context, text string) (storage.Message, error)
	Block(ctx context.Context) error
	Unblock(ctx context.Context) error
	Blocked(ctx context.Context) (bool, error)
	History(ctx context.Context) ([]storage.Message, error)
	Clear(ctx context.Context) error
	Export(ctx context.Context, w io.Writer) error
	DetectedSpam(ctx context.Context, limit int) ([]storage.DetectedSpamInfo, error)
}

type textRequest struct {
	Text string `json:"text"`
}

// NewServer creates a new web API server.
func NewServer(config Config) *Server {
	if config.RateLimit <= 0 {
		config.RateLimit = defaultRateLimit
	}
	return &Server{Config: config}
}

// Run starts server and accepts requests until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	if s.AuthPasswd != "" {
		log.Printf("[INFO] basic auth enabled for webapi server")
	} else {
		log.Printf("[WARN] basic auth disabled, access to webapi is not protected")
	}

	srv := &http.Server{Addr: s.ListenAddr, Handler: s.routes(), ReadHeaderTimeout: serverReadTimeout,
		ReadTimeout: serverReadTimeout, WriteTimeout: 10 * time.Second, IdleTimeout: 30 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] failed to shutdown webapi server: %v", err)
		} else {
			log.Printf("[INFO] webapi server stopped")
		}
	}()

	log.Printf("[INFO] start webapi server on %s", s.ListenAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func (s *Server) routes() http.Handler {
	lmt := tollbooth.NewLimiter(s.RateLimit, nil)
	lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr"})

	router := routegroup.New(http.NewServeMux())
	router.Use(rest.Recoverer(lgr.Default()), rest.Throttle(concurrencyLimit))
	router.Use(rest.AppInfo("spam-chat", "ashu-suve", s.Version), rest.Ping)
	router.Use(rateLimiter(lmt), rest.SizeLimit(maxRequestSize))

	router.Handle("GET /metrics", metrics.Handler())

	router.Mount("/api").Route(func(api *routegroup.Bundle) {
		api.Use(s.authMiddleware(rest.BasicAuthWithUserPasswd(authUser, s.AuthPasswd)))
		api.HandleFunc("POST /check", s.checkHandler)          // live analysis of the composer text
		api.HandleFunc("POST /send", s.sendHandler)            // send gate
		api.HandleFunc("GET /messages", s.historyHandler)      // chat history, oldest first
		api.HandleFunc("DELETE /messages", s.clearHandler)     // clear history
		api.HandleFunc("GET /export", s.exportHandler)         // download history as json
		api.HandleFunc("GET /block", s.blockStatusHandler)     // sender block flag
		api.HandleFunc("POST /block", s.blockHandler(true))    // block sender
		api.HandleFunc("POST /unblock", s.blockHandler(false)) // unblock sender
		api.HandleFunc("GET /spam", s.detectedSpamHandler)     // latest rejected messages
	})

	return router
}

// checkHandler handles POST /api/check request.
// it gets message text and returns score, verdict and reasons.
func (s *Server) checkHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeText(w, r)
	if !ok {
		return
	}
	rest.RenderJSON(w, s.Chat.Preview(req.Text))
}

// sendHandler handles POST /api/send request.
// accepted message returned with 200, spam rejected with 403, blocked sender gets 423.
func (s *Server) sendHandler(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeText(w, r)
	if !ok {
		return
	}

	msg, err := s.Chat.Send(r.Context(), req.Text)
	var spamErr *chat.SpamError
	switch {
	case err == nil:
		rest.RenderJSON(w, msg)
	case errors.As(err, &spamErr):
		w.WriteHeader(http.StatusForbidden)
		rest.RenderJSON(w, rest.JSON{"error": "spam", "details": "Message detected as SPAM and blocked.",
			"result": spamErr.Result, "verdict": spamErr.Verdict, "offer_block": true})
	case errors.Is(err, chat.ErrSenderBlocked):
		w.WriteHeader(http.StatusLocked)
		rest.RenderJSON(w, rest.JSON{"error": "blocked", "details": "Sender blocked. Unblock to send messages."})
	case errors.Is(err, chat.ErrEmptyMessage):
		w.WriteHeader(http.StatusBadRequest)
		rest.RenderJSON(w, rest.JSON{"error": "empty message"})
	default:
		s.renderError(w, http.StatusInternalServerError, "can't send message", err)
	}
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.Chat.History(r.Context())
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "can't get messages", err)
		return
	}
	if msgs == nil {
		msgs = []storage.Message{}
	}
	rest.RenderJSON(w, msgs)
}

func (s *Server) clearHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Chat.Clear(r.Context()); err != nil {
		s.renderError(w, http.StatusInternalServerError, "can't clear messages", err)
		return
	}
	rest.RenderJSON(w, rest.JSON{"cleared": true})
}

// exportHandler handles GET /api/export request, returns history as a json attachment.
// the export is buffered, so storage errors are reported with a proper status.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.Chat.Export(r.Context(), &buf); err != nil {
		s.renderError(w, http.StatusInternalServerError, "can't export messages", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFileName))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("[WARN] failed to write export: %v", err)
	}
}

func (s *Server) blockStatusHandler(w http.ResponseWriter, r *http.Request) {
	blocked, err := s.Chat.Blocked(r.Context())
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "can't get block status", err)
		return
	}
	rest.RenderJSON(w, rest.JSON{"blocked": blocked})
}

func (s *Server) blockHandler(block bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn := s.Chat.Unblock
		if block {
			fn = s.Chat.Block
		}
		if err := fn(r.Context()); err != nil {
			s.renderError(w, http.StatusInternalServerError, "can't change block status", err)
			return
		}
		rest.RenderJSON(w, rest.JSON{"blocked": block})
	}
}

// detectedSpamHandler handles GET /api/spam?limit=N request
func (s *Server) detectedSpamHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultSpamLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			s.renderError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}
		limit = l
	}
	entries, err := s.Chat.DetectedSpam(r.Context(), limit)
	if err != nil {
		s.renderError(w, http.StatusInternalServerError, "can't get detected spam", err)
		return
	}
	rest.RenderJSON(w, entries)
}

func (s *Server) decodeText(w http.ResponseWriter, r *http.Request) (textRequest, bool) {
	req := textRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.renderError(w, http.StatusBadRequest, "can't decode request", err)
		return req, false
	}
	return req, true
}

func (s *Server) renderError(w http.ResponseWriter, code int, msg string, err error) {
	log.Printf("[WARN] %s: %v", msg, err)
	w.WriteHeader(code)
	rest.RenderJSON(w, rest.JSON{"error": msg, "details": err.Error()})
}

func (s *Server) authMiddleware(mw func(next http.Handler) http.Handler) func(next http.Handler) http.Handler {
	if s.AuthPasswd == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return mw
}

func rateLimiter(lmt *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}

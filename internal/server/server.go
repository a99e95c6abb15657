// Package server exposes the swarm dispatcher over HTTP. Every route maps
// onto one dispatcher action and returns the same envelope the action
// surface produces, with HTTP 200 for both outcomes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Pastarafian/VegaMCP-sub003/internal/api"
)

// maxBodyBytes caps request bodies. Payloads are small control messages,
// not bulk data.
const maxBodyBytes = 1 << 20

// Server is the HTTP bridge in front of a dispatcher.
type Server struct {
	dispatcher *api.Dispatcher
	httpServer *http.Server
	debugLog   func(format string, args ...interface{})
}

// Option configures a Server.
type Option func(*Server)

// WithDebugLog sets the debug logging function.
func WithDebugLog(fn func(format string, args ...interface{})) Option {
	return func(s *Server) {
		if fn != nil {
			s.debugLog = fn
		}
	}
}

// New creates a server listening on addr once Start is called.
func New(d *api.Dispatcher, addr string, opts ...Option) *Server {
	s := &Server{
		dispatcher: d,
		debugLog:   func(format string, args ...interface{}) {}, // no-op by default
	}
	for _, opt := range opts {
		opt(s)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the route table. Exposed so tests can drive the server
// without a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /swarm/graphs", s.action(api.ActionCreate))
	mux.HandleFunc("GET /swarm/graphs", s.action(api.ActionList))
	mux.HandleFunc("POST /swarm/graphs/{id}/agents", s.graphAction(api.ActionAddAgent))
	mux.HandleFunc("POST /swarm/graphs/{id}/edges", s.graphAction(api.ActionAddEdge))
	mux.HandleFunc("POST /swarm/graphs/{id}/plan", s.graphAction(api.ActionPlan))
	mux.HandleFunc("GET /swarm/graphs/{id}/groups", s.graphAction(api.ActionParallelGroups))
	mux.HandleFunc("POST /swarm/graphs/{id}/handoff", s.graphAction(api.ActionHandoff))
	mux.HandleFunc("GET /swarm/graphs/{id}/summary", s.graphAction(api.ActionSummary))

	return mux
}

// Start runs the listener until Shutdown is called.
func (s *Server) Start() error {
	s.debugLog("[server] listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// action dispatches the request body as-is.
func (s *Server) action(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := readBody(r)
		if err != nil {
			s.respond(w, r, name, api.Fail(err))
			return
		}
		s.respond(w, r, name, s.dispatcher.Handle(r.Context(), name, params))
	}
}

// graphAction dispatches with the graph ID from the path merged into the
// body parameters. The path wins over a conflicting body field.
func (s *Server) graphAction(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := readBody(r)
		if err != nil {
			s.respond(w, r, name, api.Fail(err))
			return
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(params, &fields); err != nil {
			s.respond(w, r, name, api.Fail(err))
			return
		}
		id, _ := json.Marshal(r.PathValue("id"))
		fields["graph_id"] = id
		merged, err := json.Marshal(fields)
		if err != nil {
			s.respond(w, r, name, api.Fail(err))
			return
		}

		s.respond(w, r, name, s.dispatcher.Handle(r.Context(), name, merged))
	}
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, action string, env api.Envelope) {
	s.debugLog("[server] %s %s action=%s success=%v", r.Method, r.URL.Path, action, env.Success)
	writeJSON(w, env)
}

// readBody returns the request body as JSON parameters. An empty body is
// treated as an empty parameter object.
func readBody(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return json.RawMessage("{}"), nil
	}
	return json.RawMessage(body), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"success":false,"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Write(data)
}

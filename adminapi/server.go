// vi: sw=4 ts=4:

/*

	Mnemonic:	server
	Abstract:	The admin HTTP surface: one handler per path, a method
					switch inside each, plain net/http with no framework.
					Talks to the core only through controller.Core's
					exported methods, and answers every request with a
					typed {result, data}/{result, error} JSON envelope.
	Date:		31 Jul 2026
*/

package adminapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dresnet/controller"
)

// envelope is the {result, data} / {result, error} shape used for
// every admin response.
type envelope struct {
	Result string      `json:"result"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// Server adapts controller.Core to HTTP+JSON. Every handler does nothing
// but decode, call into core, and re-encode.
type Server struct {
	core *controller.Core
	log  zerolog.Logger
}

// NewServer wires a Server around an already-running core.
func NewServer(core *controller.Core, log zerolog.Logger) *Server {
	return &Server{core: core, log: log.With().Str("component", "adminapi").Logger()}
}

// Handler builds the request router. The caller is responsible for
// running it (http.ListenAndServe or a test httptest.Server).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/disaster", s.handleDisaster)
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/switch", s.handleSwitch)
	mux.HandleFunc("/link", s.handleLink)
	mux.HandleFunc("/port-to-switch", s.handlePortToSwitch)
	mux.HandleFunc("/host-pair", s.handleHostPair)
	mux.HandleFunc("/host-client", s.handleHostClient)
	mux.Handle("/metrics", metricsHandler())
	return mux
}

// requestLog tags an inbound admin request with a correlation id, so log
// lines from concurrent requests on the same path can be told apart.
func (s *Server) requestLog(r *http.Request) zerolog.Logger {
	return s.log.With().Str("request_id", uuid.NewString()).Str("method", r.Method).Str("path", r.URL.Path).Logger()
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeOK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, envelope{Result: "OK", Data: data})
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, envelope{Result: "ERROR", Error: err.Error()})
}

func (s *Server) handleDisaster(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r)
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
		return
	}
	s.core.StartUpdatePath()
	log.Info().Msg("update loop started")
	writeOK(w, nil)
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	log := s.requestLog(r)
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed(r.Method))
		return
	}
	s.core.Init()
	log.Info().Msg("core reset")
	writeOK(w, nil)
}

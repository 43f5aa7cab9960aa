package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const statusTimeout = 5 * time.Second

type Handler struct {
	probes map[string]Probe
}

func NewHandler(probes map[string]Probe) *Handler {
	return &Handler{probes: probes}
}

type ProbeStatus struct {
	Name      string   `json:"-"`
	OK        bool     `json:"ok"`
	Category  Category `json:"category"`
	Finding   string   `json:"finding,omitempty"`
	FaultCode string   `json:"faultCode,omitempty"`
	Message   string   `json:"message,omitempty"`
}

type StatusResponse struct {
	Probes map[string]*ProbeStatus `json:"probes"`
}

// collectStatus executes all probes concurrently and reports whether
// every probe both ran and came back without findings. Probes touch
// disjoint read-only OS state, so no coordination is needed between
// them.
func (h *Handler) collectStatus() (*StatusResponse, bool) {
	response := &StatusResponse{
		Probes: make(map[string]*ProbeStatus),
	}

	results := make(chan *ProbeStatus, len(h.probes))
	timeout := time.NewTimer(statusTimeout)
	defer timeout.Stop()

	for name := range h.probes {
		response.Probes[name] = &ProbeStatus{Name: name, OK: false, Message: "timed out"}

		go func(p Probe, name string) {
			status := &ProbeStatus{Name: name, Category: p.Category()}

			result, err := p.Exec()
			if err != nil {
				status.Message = err.Error()
			} else {
				status.OK = result.Success()
				status.Finding = result.AsString()
				status.FaultCode = result.FaultCode()
				status.Message = result.Explain()
			}

			results <- status
		}(h.probes[name], name)
	}

	ok := true

	for i := 0; i < len(h.probes); i++ {
		select {
		case status := <-results:
			response.Probes[status.Name] = status
			ok = ok && status.OK
		case <-timeout.C:
			log.WithField("kind", "probe").Error("status collection timed out")
			return response, false
		}
	}

	return response, ok
}

func (h *Handler) HandleStatus(res http.ResponseWriter, req *http.Request) {
	response, ok := h.collectStatus()

	res.Header().Set("Content-Type", "application/json")

	if !ok {
		res.WriteHeader(http.StatusServiceUnavailable)
	}

	_ = json.NewEncoder(res).Encode(response)
}

var streamUpgrader = websocket.Upgrader{}

// HandleStream pushes the status document over a websocket connection
// on a fixed interval until the client disconnects.
func (h *Handler) HandleStream(res http.ResponseWriter, req *http.Request) {
	interval := 10 * time.Second
	if raw := req.URL.Query().Get("interval"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds < 1 {
			http.Error(res, "interval must be a positive number of seconds", http.StatusBadRequest)
			return
		}
		interval = time.Duration(seconds) * time.Second
	}

	conn, err := streamUpgrader.Upgrade(res, req, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	streamCtx, cancel := context.WithCancel(req.Context())
	defer cancel()

	// handle client disconnects
	go func() {
		if _, _, err := conn.ReadMessage(); err != nil {
			cancel()
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		response, _ := h.collectStatus()

		payload, err := json.Marshal(response)
		if err != nil {
			log.WithError(err).Error("failed to encode status response")
			return
		}

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-streamCtx.Done():
			return
		}
	}
}

func RunProbeServer(h *Handler, signals chan os.Signal, listenPort int) error {
	m := mux.NewRouter()
	m.Path("/status").HandlerFunc(h.HandleStatus)
	m.Path("/stream").HandlerFunc(h.HandleStream)

	server := http.Server{
		Addr:    fmt.Sprintf(":%d", listenPort),
		Handler: m,
	}

	go func() {
		for s := range signals {
			if s == syscall.SIGINT || s == syscall.SIGTERM {
				log.WithField("receivedSignal", s.String()).Info("shutting down probe server")
				_ = server.Shutdown(context.Background())
			}
		}
	}()

	err := server.ListenAndServe()
	if err != http.ErrServerClosed {
		return err
	}

	return nil
}

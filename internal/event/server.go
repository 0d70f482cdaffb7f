package event

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/formlab/formlab/internal/eventbus"
)

// Server streams bus events over server-sent events so the editor frontend
// can refresh its project list when something changes underneath it.
type Server struct {
	bus *eventbus.Bus
}

func NewServer(bus *eventbus.Bus) *Server {
	return &Server{bus: bus}
}

func (s *Server) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	id, ch := s.bus.Subscribe(16)
	defer s.bus.Unsubscribe(id)
	slog.DebugContext(r.Context(), "event stream opened", "subscriber", id)

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				slog.ErrorContext(r.Context(), "failed to marshal event", "error", err)
				continue
			}
			if _, err := fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Type, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

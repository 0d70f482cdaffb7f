package status

import (
	"net/http"
	"sort"

	"github.com/formlab/formlab/pkg/cerr"
)

type Server struct {
	tracker *Tracker
}

func NewServer(tracker *Tracker) *Server {
	return &Server{tracker: tracker}
}

type StatusResponse struct {
	Notices []Notice `json:"notices"`
}

func (s *Server) HandleStatus(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")
	notices := []Notice{}
	if scope != "" {
		if notice, ok := s.tracker.Get(scope); ok {
			notices = append(notices, notice)
		}
	} else {
		notices = s.tracker.Active()
		sort.Slice(notices, func(i, j int) bool { return notices[i].Scope < notices[j].Scope })
	}
	cerr.SetJSONResponse(r.Context(), StatusResponse{Notices: notices})
}

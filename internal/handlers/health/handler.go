package health

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"huddle/shared/constant"
	"huddle/shared/timezone"
	"huddle/transport/http/response"
)

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/health", handler.Health)
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Health reports liveness for load balancers and uptime checks.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.WithJSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: timezone.Format(timezone.Now(), constant.DateFormat),
	})
}

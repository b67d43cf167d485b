package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tropicaldog17/oraclewatch/internal/middleware"
	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/services"
)

// maxWeb4Body caps a web4 request; preloads carry whole oracle views.
const maxWeb4Body = 8 << 20

type Web4Handler struct {
	service services.Web4Service
	logger  *zap.Logger
}

func NewWeb4Handler(service services.Web4Service, logger *zap.Logger) *Web4Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Web4Handler{service: service, logger: logger}
}

// POST /web4
// @Summary Answer a web4 request
// @Description Without preloads returns the oracle views to fetch; with preloads renders the dashboard
// @Tags web4
// @Accept json
// @Produce json
// @Param request body models.Web4Request true "Web4 request"
// @Success 200 {object} models.Web4Response
// @Failure 400 {object} errorResponse "Bad request or missing preload"
// @Failure 502 {object} errorResponse "Oracle data could not be decoded"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /web4 [post]
func (h *Web4Handler) HandleWeb4(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.Web4Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxWeb4Body)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	resp, err := h.service.Handle(r.Context(), &req)
	if err != nil {
		status := statusForError(err)
		h.logger.Warn("Web4 request failed",
			zap.String("path", req.Path),
			zap.Int("status", status),
			zap.String("request_id", middleware.RequestID(r.Context())),
			zap.Error(err))
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

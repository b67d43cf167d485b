package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/tropicaldog17/oraclewatch/internal/models"
	"github.com/tropicaldog17/oraclewatch/internal/services"
)

const (
	AdminSignatureHeader = "X-Admin-Signature"
	maxRegistryBody      = 1 << 20
)

type RegistryHandler struct {
	service services.RegistryService
	secret  string
	logger  *zap.Logger
}

func NewRegistryHandler(service services.RegistryService, secret string, logger *zap.Logger) *RegistryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryHandler{service: service, secret: secret, logger: logger}
}

type getConfigRequest struct {
	Keys []string `json:"keys"`
}

type putConfigRequest struct {
	AccountID string              `json:"account_id"`
	Config    *models.TokenConfig `json:"config"`
}

type putConfigsRequest struct {
	Configs []models.TokenConfigEntry `json:"configs"`
}

type storedResponse struct {
	Stored int `json:"stored"`
}

// POST /api/config
// @Summary Get token configs
// @Description Returns [asset_id, config|null] for every requested key, in request order
// @Tags registry
// @Accept json
// @Produce json
// @Param request body getConfigRequest true "Asset ids"
// @Success 200 {array} models.TokenConfigEntry
// @Failure 400 {object} errorResponse "Bad request"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /config [post]
func (h *RegistryHandler) HandleGetConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req getConfigRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRegistryBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Keys == nil {
		writeError(w, http.StatusBadRequest, "keys is required")
		return
	}

	entries, err := h.service.Get(r.Context(), req.Keys)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// POST /api/admin/token-config
// @Summary Store one token config
// @Tags registry
// @Accept json
// @Produce json
// @Param X-Admin-Signature header string true "hex HMAC-SHA256 of the body"
// @Param request body putConfigRequest true "Token config"
// @Success 200 {object} storedResponse
// @Failure 400 {object} errorResponse "Bad request"
// @Failure 401 {object} errorResponse "Invalid signature"
// @Router /admin/token-config [post]
func (h *RegistryHandler) HandlePutConfig(w http.ResponseWriter, r *http.Request) {
	body, ok := h.authorizedBody(w, r)
	if !ok {
		return
	}
	var req putConfigRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Config == nil {
		writeError(w, http.StatusBadRequest, "config is required")
		return
	}
	if err := h.service.Put(r.Context(), req.AccountID, *req.Config); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, storedResponse{Stored: 1})
}

// POST /api/admin/token-configs
// @Summary Store many token configs atomically
// @Tags registry
// @Accept json
// @Produce json
// @Param X-Admin-Signature header string true "hex HMAC-SHA256 of the body"
// @Param request body putConfigsRequest true "Token configs as [asset_id, config] pairs"
// @Success 200 {object} storedResponse
// @Failure 400 {object} errorResponse "Bad request"
// @Failure 401 {object} errorResponse "Invalid signature"
// @Router /admin/token-configs [post]
func (h *RegistryHandler) HandlePutConfigs(w http.ResponseWriter, r *http.Request) {
	body, ok := h.authorizedBody(w, r)
	if !ok {
		return
	}
	var req putConfigsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := h.service.PutMany(r.Context(), req.Configs); err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, storedResponse{Stored: len(req.Configs)})
}

// authorizedBody reads the body and checks its signature, writing the error response itself.
func (h *RegistryHandler) authorizedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return nil, false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRegistryBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return nil, false
	}
	if !h.verify(body, r.Header.Get(AdminSignatureHeader)) {
		h.logger.Warn("Rejected registry write", zap.String("path", r.URL.Path), zap.String("remote_addr", r.RemoteAddr))
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return nil, false
	}
	return body, true
}

func (h *RegistryHandler) verify(body []byte, sig string) bool {
	if h.secret == "" || sig == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sig))
}

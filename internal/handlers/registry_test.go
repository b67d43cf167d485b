package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tropicaldog17/oraclewatch/internal/errors"
	"github.com/tropicaldog17/oraclewatch/internal/models"
)

const testSecret = "secret"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func signedRequest(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set(AdminSignatureHeader, sign([]byte(body)))
	return req
}

func TestVerifyHMAC(t *testing.T) {
	h := &RegistryHandler{secret: testSecret}
	body := []byte("hello")
	assert.True(t, h.verify(body, sign(body)))
	assert.False(t, h.verify(body, "bad"))
	assert.False(t, h.verify(body, ""))

	disabled := &RegistryHandler{}
	assert.False(t, disabled.verify(body, sign(body)))
}

func TestRegistryHandler_GetConfig(t *testing.T) {
	ms := newMockRegistryService()
	ms.configs["wrap.near"] = models.TokenConfig{AssetID: "wrap.near", TokenName: "NEAR", Decimals: 24}
	h := NewRegistryHandler(ms, testSecret, nil)

	rw := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/config", strings.NewReader(`{"keys":["wrap.near","missing.near","wrap.near"]}`))
	h.HandleGetConfig(rw, req)

	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	assert.JSONEq(t, `[
		["wrap.near", {"token_name":"NEAR","decimals":24}],
		["missing.near", null],
		["wrap.near", {"token_name":"NEAR","decimals":24}]
	]`, rw.Body.String())
}

func TestRegistryHandler_GetConfigEmptyKeys(t *testing.T) {
	h := NewRegistryHandler(newMockRegistryService(), testSecret, nil)

	rw := httptest.NewRecorder()
	h.HandleGetConfig(rw, httptest.NewRequest(http.MethodPost, "/api/config", strings.NewReader(`{"keys":[]}`)))
	require.Equal(t, http.StatusOK, rw.Code)
	assert.JSONEq(t, `[]`, rw.Body.String())

	rw = httptest.NewRecorder()
	h.HandleGetConfig(rw, httptest.NewRequest(http.MethodPost, "/api/config", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rw.Code)
}

func TestRegistryHandler_PutConfig(t *testing.T) {
	ms := newMockRegistryService()
	h := NewRegistryHandler(ms, testSecret, nil)

	rw := httptest.NewRecorder()
	h.HandlePutConfig(rw, signedRequest("/api/admin/token-config",
		`{"account_id":"wrap.near","config":{"token_name":"NEAR","decimals":24}}`))

	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	assert.JSONEq(t, `{"stored":1}`, rw.Body.String())
	assert.Equal(t, models.TokenConfig{AssetID: "wrap.near", TokenName: "NEAR", Decimals: 24}, ms.configs["wrap.near"])
}

func TestRegistryHandler_PutConfigRejectsBadSignature(t *testing.T) {
	ms := newMockRegistryService()
	h := NewRegistryHandler(ms, testSecret, nil)

	body := `{"account_id":"wrap.near","config":{"token_name":"NEAR","decimals":24}}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/token-config", strings.NewReader(body))
	req.Header.Set(AdminSignatureHeader, sign([]byte(body+" ")))
	rw := httptest.NewRecorder()
	h.HandlePutConfig(rw, req)

	assert.Equal(t, http.StatusUnauthorized, rw.Code)
	assert.Equal(t, 0, ms.putCalls)
}

func TestRegistryHandler_PutConfigDisabledWithoutSecret(t *testing.T) {
	ms := newMockRegistryService()
	h := NewRegistryHandler(ms, "", nil)

	rw := httptest.NewRecorder()
	h.HandlePutConfig(rw, signedRequest("/api/admin/token-config", `{"account_id":"wrap.near","config":{"token_name":"NEAR","decimals":24}}`))

	assert.Equal(t, http.StatusUnauthorized, rw.Code)
	assert.Equal(t, 0, ms.putCalls)
}

func TestRegistryHandler_PutConfigErrors(t *testing.T) {
	ms := newMockRegistryService()
	h := NewRegistryHandler(ms, testSecret, nil)

	rw := httptest.NewRecorder()
	h.HandlePutConfig(rw, signedRequest("/api/admin/token-config", `{"account_id":"wrap.near"}`))
	assert.Equal(t, http.StatusBadRequest, rw.Code)

	rw = httptest.NewRecorder()
	h.HandlePutConfig(rw, signedRequest("/api/admin/token-config", `not json`))
	assert.Equal(t, http.StatusBadRequest, rw.Code)

	ms.err = &apperrors.ErrValidation{Field: "account_id", Message: "invalid"}
	rw = httptest.NewRecorder()
	h.HandlePutConfig(rw, signedRequest("/api/admin/token-config", `{"account_id":"BAD","config":{"token_name":"X","decimals":1}}`))
	assert.Equal(t, http.StatusBadRequest, rw.Code)

	ms.err = assert.AnError
	rw = httptest.NewRecorder()
	h.HandlePutConfig(rw, signedRequest("/api/admin/token-config", `{"account_id":"wrap.near","config":{"token_name":"X","decimals":1}}`))
	assert.Equal(t, http.StatusInternalServerError, rw.Code)
}

func TestRegistryHandler_PutConfigs(t *testing.T) {
	ms := newMockRegistryService()
	h := NewRegistryHandler(ms, testSecret, nil)

	rw := httptest.NewRecorder()
	h.HandlePutConfigs(rw, signedRequest("/api/admin/token-configs", `{"configs":[
		["wrap.near", {"token_name":"NEAR","decimals":24}],
		["aurora", {"token_name":"ETH","decimals":18}]
	]}`))

	require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())
	assert.JSONEq(t, `{"stored":2}`, rw.Body.String())
	require.Len(t, ms.putMany, 1)
	require.Len(t, ms.putMany[0], 2)
	assert.Equal(t, "aurora", ms.putMany[0][1].AssetID)
	assert.Equal(t, "aurora", ms.putMany[0][1].Config.AssetID)
	assert.Equal(t, "ETH", ms.configs["aurora"].TokenName)
}

func TestRegistryHandler_PutConfigsBadTuple(t *testing.T) {
	ms := newMockRegistryService()
	h := NewRegistryHandler(ms, testSecret, nil)

	rw := httptest.NewRecorder()
	h.HandlePutConfigs(rw, signedRequest("/api/admin/token-configs", `{"configs":[["wrap.near"]]}`))

	assert.Equal(t, http.StatusBadRequest, rw.Code)
	assert.Empty(t, ms.putMany)
}

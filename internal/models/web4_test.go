package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeb4Response_Constructors(t *testing.T) {
	html := HTMLResponse("<p>hi</p>")
	require.NotNil(t, html.ContentType)
	assert.Equal(t, ContentTypeHTML, *html.ContentType)
	assert.Equal(t, "<p>hi</p>", string(html.Body))

	plain := PlainResponse("ok")
	assert.Equal(t, ContentTypePlain, *plain.ContentType)

	preload := PreloadURLsResponse([]string{"/a", "/b"})
	assert.Equal(t, []string{"/a", "/b"}, preload.PreloadURLs)
	assert.Nil(t, preload.Body)
	assert.Nil(t, preload.ContentType)

	bodyURL := BodyURLResponse("ipfs://x")
	require.NotNil(t, bodyURL.BodyURL)
	assert.Equal(t, "ipfs://x", *bodyURL.BodyURL)

	status := StatusResponse(404)
	require.NotNil(t, status.Status)
	assert.Equal(t, uint32(404), *status.Status)
}

func TestWeb4Response_JSON(t *testing.T) {
	data, err := json.Marshal(PlainResponse("User-agent: *\nDisallow:"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"contentType": "text/plain; charset=UTF-8",
		"status": null,
		"body": "VXNlci1hZ2VudDogKgpEaXNhbGxvdzo=",
		"bodyUrl": null,
		"preloadUrls": null
	}`, string(data))
}

func TestWeb4Request_PreloadsPresence(t *testing.T) {
	var phaseA Web4Request
	require.NoError(t, json.Unmarshal([]byte(`{"path":"/"}`), &phaseA))
	assert.Nil(t, phaseA.Preloads)
	assert.Nil(t, phaseA.AccountID)

	var nullPreloads Web4Request
	require.NoError(t, json.Unmarshal([]byte(`{"path":"/","preloads":null}`), &nullPreloads))
	assert.Nil(t, nullPreloads.Preloads)

	var phaseB Web4Request
	require.NoError(t, json.Unmarshal([]byte(`{"path":"/","preloads":{"/x":{"body":"e30="},"/y":{}}}`), &phaseB))
	require.NotNil(t, phaseB.Preloads)
	assert.Equal(t, "{}", string(phaseB.Preloads["/x"].Body))
	assert.Nil(t, phaseB.Preloads["/y"].Body)
}

func TestAssetOptionalPrice_RawPrice(t *testing.T) {
	assert.Equal(t, "Not found", AssetOptionalPrice{AssetID: "wrap.near"}.RawPrice())
}

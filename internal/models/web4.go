package models

const (
	ContentTypeHTML  = "text/html; charset=UTF-8"
	ContentTypePlain = "text/plain; charset=UTF-8"
)

// Web4Request is what the web4 host passes to the gateway. Preloads is nil on the first
// contact; on the second it carries the responses for the URLs declared in PreloadURLs, keyed
// by URL.
type Web4Request struct {
	AccountID *string                 `json:"accountId"`
	Path      string                  `json:"path"`
	Params    map[string]string       `json:"params"`
	Query     map[string][]string     `json:"query"`
	Preloads  map[string]Web4Response `json:"preloads"`
}

// Web4Response mirrors the web4 response object. Unset fields encode as null and Body is
// base64 on the wire.
type Web4Response struct {
	ContentType *string  `json:"contentType"`
	Status      *uint32  `json:"status"`
	Body        []byte   `json:"body"`
	BodyURL     *string  `json:"bodyUrl"`
	PreloadURLs []string `json:"preloadUrls"`
}

func HTMLResponse(text string) *Web4Response {
	ct := ContentTypeHTML
	return &Web4Response{ContentType: &ct, Body: []byte(text)}
}

func PlainResponse(text string) *Web4Response {
	ct := ContentTypePlain
	return &Web4Response{ContentType: &ct, Body: []byte(text)}
}

func PreloadURLsResponse(urls []string) *Web4Response {
	return &Web4Response{PreloadURLs: urls}
}

func BodyURLResponse(url string) *Web4Response {
	return &Web4Response{BodyURL: &url}
}

func StatusResponse(status uint32) *Web4Response {
	return &Web4Response{Status: &status}
}

// Package testutil builds gin engines and requests for handler tests.
package testutil

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/application/user/dto"
	"stockdesk/internal/infrastructure/template"
	"stockdesk/internal/interfaces/http/handlers/common"
	"stockdesk/internal/interfaces/http/middleware"
	"stockdesk/internal/shared/logger"
	"stockdesk/internal/shared/services/markdown"
	"stockdesk/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
}

// NewView returns a view rendering times in UTC.
func NewView() *common.View {
	return common.NewView(utils.CookieOptions{Path: "/"}, markdown.NewRenderer(), time.UTC, logger.NewNop())
}

// NewEngine returns an engine with the built-in pages loaded.
func NewEngine(t *testing.T, view *common.View) *gin.Engine {
	t.Helper()
	tmpl, err := template.NewPageLoader("", logger.NewNop()).Load(view.FuncMap())
	require.NoError(t, err)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	return engine
}

// WithPrincipal stores p on the context as the auth middleware would.
func WithPrincipal(p *dto.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			middleware.SetPrincipal(c, p)
		}
		c.Next()
	}
}

// Serve runs req through engine.
func Serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func NewFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// File is a part sent by NewMultipartRequest.
type File struct {
	Field   string
	Name    string
	Content []byte
}

func NewMultipartRequest(t *testing.T, path string, fields map[string]string, files ...File) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, value := range fields {
		require.NoError(t, mw.WriteField(name, value))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// Flashes decodes the messages queued in the response's flash cookie.
func Flashes(t *testing.T, w *httptest.ResponseRecorder) []utils.Flash {
	t.Helper()
	var last string
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "flash" {
			last = ck.Value
		}
	}
	if last == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(last)
	require.NoError(t, err)
	var flashes []utils.Flash
	require.NoError(t, json.Unmarshal(raw, &flashes))
	return flashes
}

// FlashMessages returns only the texts of Flashes.
func FlashMessages(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var out []string
	for _, f := range Flashes(t, w) {
		out = append(out, f.Message)
	}
	return out
}

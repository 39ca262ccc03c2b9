package template

import (
	"bytes"
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdesk/internal/shared/logger"
)

func stubFuncs() template.FuncMap {
	return template.FuncMap{
		"t":           func(lang any, key string) string { return key },
		"statusLabel": func(lang any, s any) string { return "status" },
		"roleLabel":   func(lang any, r any) string { return "role" },
		"fmtTime":     func(v any) string { return "time" },
		"markdown":    func(s string) template.HTML { return template.HTML(s) },
	}
}

func TestPageLoader_BuiltIn(t *testing.T) {
	tmpl, err := NewPageLoader("", logger.NewNop()).Load(stubFuncs())
	require.NoError(t, err)

	for _, page := range []string{"login.html", "dashboard.html", "ticket_new.html", "ticket_detail.html", "users.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(page), page)
	}
	assert.Contains(t, Pages(), "layout.html")
}

func TestPageLoader_Overrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "error.html"), []byte(`custom {{.Message}}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unknown.html"), []byte(`ignored`), 0o600))

	tmpl, err := NewPageLoader(dir, logger.NewNop()).Load(stubFuncs())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "error.html", map[string]any{"Message": "boom"}))
	assert.Equal(t, "custom boom", buf.String())
	assert.Nil(t, tmpl.Lookup("unknown.html"))
}

func TestPageLoader_MissingDirectoryFallsBack(t *testing.T) {
	tmpl, err := NewPageLoader(filepath.Join(t.TempDir(), "absent"), logger.NewNop()).Load(stubFuncs())
	require.NoError(t, err)
	assert.NotNil(t, tmpl.Lookup("dashboard.html"))
}

func TestPageLoader_BrokenOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.html"), []byte(`{{if}}`), 0o600))

	_, err := NewPageLoader(dir, logger.NewNop()).Load(stubFuncs())
	assert.Error(t, err)
}

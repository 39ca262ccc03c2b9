// Package template loads the HTML pages rendered by the web UI.
package template

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"stockdesk/internal/shared/logger"
)

//go:embed pages/*.html
var embedded embed.FS

// PageLoader parses the built-in pages and lets files in an optional directory replace them.
// An override file must carry the same name as the page it replaces, e.g. dashboard.html.
type PageLoader struct {
	path   string
	logger logger.Interface
}

func NewPageLoader(path string, logger logger.Interface) *PageLoader {
	return &PageLoader{
		path:   path,
		logger: logger,
	}
}

// Load returns the page set with funcs installed.
func (l *PageLoader) Load(funcs template.FuncMap) (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(embedded, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in pages: %w", err)
	}

	if l.path == "" {
		return tmpl, nil
	}

	if _, err := os.Stat(l.path); os.IsNotExist(err) {
		l.logger.Warnw("page override directory not found, using built-in pages", "path", l.path)
		return tmpl, nil
	}

	files, err := filepath.Glob(filepath.Join(l.path, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to list page overrides: %w", err)
	}
	sort.Strings(files)

	for _, file := range files {
		name := filepath.Base(file)
		if tmpl.Lookup(name) == nil {
			l.logger.Warnw("ignoring override for unknown page", "file", file)
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			l.logger.Warnw("failed to read page override", "file", file, "error", err)
			continue
		}

		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return nil, fmt.Errorf("failed to parse page override %s: %w", name, err)
		}
		l.logger.Infow("loaded page override", "page", name, "size", len(content))
	}

	return tmpl, nil
}

// Pages lists the built-in page names.
func Pages() []string {
	entries, err := embedded.ReadDir("pages")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".html") {
			names = append(names, e.Name())
		}
	}
	return names
}

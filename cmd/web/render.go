package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"phuongcosmetics.vn/storefront-web/internal/i18n"
	"phuongcosmetics.vn/storefront-web/internal/nav"
	"phuongcosmetics.vn/storefront-web/internal/platform/observability"
	"phuongcosmetics.vn/storefront-web/internal/seo"
)

const (
	sharedTemplatesGlob = "{layouts,partials}/**/*.tmpl"
	pageTemplatesGlob   = "pages/**/*.tmpl"
)

// views holds the layout+partials set and one clone per page so every page can
// define its own "content" block.
type views struct {
	shared *template.Template
	pages  map[string]*template.Template
}

// viewCache parses templates once, or on every request in dev mode.
type viewCache struct {
	fsys   fs.FS
	funcs  template.FuncMap
	dev    bool
	mu     sync.RWMutex
	cached *views
}

func newViewCache(fsys fs.FS, bundle *i18n.Bundle, dev bool) (*viewCache, error) {
	vc := &viewCache{fsys: fsys, funcs: templateFuncs(bundle), dev: dev}
	v, err := vc.parse()
	if err != nil {
		return nil, err
	}
	vc.cached = v
	return vc, nil
}

func (vc *viewCache) get() (*views, error) {
	if vc.dev {
		return vc.parse()
	}
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.cached, nil
}

func (vc *viewCache) parse() (*views, error) {
	shared, err := doublestar.Glob(vc.fsys, sharedTemplatesGlob)
	if err != nil {
		return nil, fmt.Errorf("glob shared templates: %w", err)
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no layout or partial templates found")
	}
	root, err := template.New("_root").Funcs(vc.funcs).ParseFS(vc.fsys, shared...)
	if err != nil {
		return nil, err
	}

	pageFiles, err := doublestar.Glob(vc.fsys, pageTemplatesGlob)
	if err != nil {
		return nil, fmt.Errorf("glob page templates: %w", err)
	}
	v := &views{shared: root, pages: make(map[string]*template.Template, len(pageFiles))}
	for _, file := range pageFiles {
		clone, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(vc.fsys, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		v.pages[strings.TrimSuffix(path.Base(file), ".tmpl")] = clone
	}
	return v, nil
}

func templateFuncs(bundle *i18n.Bundle) template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string) string { return bundle.T(lang, key) },
		"tf": func(lang, key string, args ...any) string {
			return bundle.Tf(lang, key, args...)
		},
		"crumb": func(lang string, c nav.Crumb) string {
			if c.LabelKey != "" {
				return bundle.T(lang, c.LabelKey)
			}
			return c.Label
		},
		"inc":  func(i int) int { return i + 1 },
		"year": func() int { return time.Now().Year() },
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
}

// renderPage executes the base layout for page, synchronises meta into the head
// and writes the document with status.
func (a *app) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data any, meta *seo.Metadata) {
	logger := observability.FromContext(r.Context())
	v, err := a.views.get()
	if err != nil {
		logger.Error("parse templates", zap.Error(err))
		http.Error(w, "template parse error", http.StatusInternalServerError)
		return
	}
	t, ok := v.pages[page]
	if !ok {
		logger.Error("unknown page template", zap.String("page", page))
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.Error("execute page template", zap.String("page", page), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}

	out := buf.Bytes()
	if meta != nil {
		doc, err := seo.ParseDocument(&buf)
		if err != nil {
			logger.Error("parse rendered document", zap.Error(err))
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}
		seo.NewSync(doc.Head()).Apply(meta)
		var synced bytes.Buffer
		if err := doc.Render(&synced); err != nil {
			logger.Error("serialise document", zap.Error(err))
			http.Error(w, "render error", http.StatusInternalServerError)
			return
		}
		out = synced.Bytes()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

// renderTemplate executes a named fragment from the shared set.
func (a *app) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	logger := observability.FromContext(r.Context())
	v, err := a.views.get()
	if err != nil {
		logger.Error("parse templates", zap.Error(err))
		http.Error(w, "template parse error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := v.shared.ExecuteTemplate(&buf, name, data); err != nil {
		logger.Error("execute fragment", zap.String("template", name), zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

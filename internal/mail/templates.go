package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/gommon/log"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

const (
	TemplateConfirmation = "confirmation.html"
	TemplateContact      = "contact.html"
)

// Templates renders mail bodies. When loaded from a directory it can reload on change.
type Templates struct {
	mu        sync.RWMutex
	dir       string
	templates *template.Template
	watcher   *fsnotify.Watcher
}

func NewTemplates(dir string) (*Templates, error) {
	t := &Templates{dir: dir}
	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Templates) load() error {
	var (
		parsed *template.Template
		err    error
	)
	if t.dir == "" {
		parsed, err = template.ParseFS(defaultTemplates, "templates/*.html")
	} else {
		parsed, err = template.ParseGlob(filepath.Join(t.dir, "*.html"))
	}
	if err != nil {
		return fmt.Errorf("parsing mail templates: %w", err)
	}

	t.mu.Lock()
	t.templates = parsed
	t.mu.Unlock()
	return nil
}

func (t *Templates) Render(name string, data interface{}) (string, error) {
	t.mu.RLock()
	templates := t.templates
	t.mu.RUnlock()

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// Watch reloads the templates whenever a file in the template directory is written.
func (t *Templates) Watch() error {
	if t.dir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	t.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					log.Infof("mail template changed: %s", event.Name)
					if err := t.load(); err != nil {
						log.Errorf("reloading mail templates: %+v", err)
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("watcher: %+v", err)
			}
		}
	}()

	if err := watcher.Add(t.dir); err != nil {
		watcher.Close()
		t.watcher = nil
		return fmt.Errorf("watching %s: %w", t.dir, err)
	}
	return nil
}

func (t *Templates) Close() {
	if t.watcher != nil {
		t.watcher.Close()
	}
}

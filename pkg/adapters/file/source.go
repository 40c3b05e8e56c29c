package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/graft/internal/dto"
	"github.com/aretw0/graft/pkg/domain"
	"github.com/aretw0/graft/pkg/feature"
	"github.com/aretw0/graft/pkg/scene"
)

// DefaultDebounce is how long Watch waits for more changes before signaling.
const DefaultDebounce = 200 * time.Millisecond

var extensions = []string{".yaml", ".yml"}

// Source implements ports.AvatarSource and ports.Watchable over a directory
// holding one YAML document per avatar. The file name is the avatar name.
type Source struct {
	Dir      string
	Debounce time.Duration
	decoder  *feature.Decoder
	logger   *slog.Logger
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithLogger sets the logger used by Watch.
func WithLogger(l *slog.Logger) SourceOption {
	return func(s *Source) { s.logger = l }
}

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) SourceOption {
	return func(s *Source) { s.Debounce = d }
}

// WithDecoder replaces the feature decoder, e.g. to register extra migrations.
func WithDecoder(d *feature.Decoder) SourceOption {
	return func(s *Source) { s.decoder = d }
}

// NewSource creates a source reading dir.
func NewSource(dir string, opts ...SourceOption) *Source {
	s := &Source{
		Dir:      dir,
		Debounce: DefaultDebounce,
		decoder:  feature.NewDecoder(feature.DefaultMigrations()),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func isAvatarFile(name string) bool {
	for _, ext := range extensions {
		if strings.EqualFold(filepath.Ext(name), ext) {
			return true
		}
	}
	return false
}

// Load parses and builds the avatar stored in name.yaml (or name.yml).
func (s *Source) Load(ctx context.Context, name string) (*scene.Avatar, error) {
	var data []byte
	var path string
	for _, ext := range extensions {
		path = filepath.Join(s.Dir, name+ext)
		b, err := os.ReadFile(path)
		if err == nil {
			data = b
			break
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read avatar %s: %w", name, err)
		}
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAvatarNotFound, name)
	}
	return s.parse(name, path, data)
}

func (s *Source) parse(name, path string, data []byte) (*scene.Avatar, error) {
	var doc dto.AvatarDTO
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = name
	}
	if doc.Name != name {
		return nil, fmt.Errorf("%s declares avatar %q, expected %q", path, doc.Name, name)
	}
	av, err := doc.Build(s.decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to build avatar %s: %w", name, err)
	}
	return av, nil
}

// List returns the avatar names found in the directory, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list avatars: %w", err)
	}
	seen := make(map[string]struct{})
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !isAvatarFile(entry.Name()) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Watch signals on the returned channel after avatar files change. Bursts of
// events within Debounce collapse into one signal. The channel closes when
// ctx ends.
func (s *Source) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(s.Dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Dir, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer w.Close()

		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !isAvatarFile(ev.Name) || ev.Op == fsnotify.Chmod {
					continue
				}
				s.logger.Debug("avatar file changed", "path", ev.Name, "op", ev.Op.String())
				fire = time.After(s.Debounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Warn("watcher error", "error", err)
			case <-fire:
				fire = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

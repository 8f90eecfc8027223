package asset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/fsnotify/fsnotify"
)

type server struct {
	mu *sync.Mutex

	root       string
	workers    int
	watchDelay time.Duration
	logger     *log.Logger

	pool     worker.DynamicWorkerPool
	taskID   atomic.Int64
	inflight atomic.Int64

	handles   map[string]*Handle
	listeners []func(*Handle)

	watcher  *fsnotify.Watcher
	watched  map[string]bool
	debounce map[string]*time.Timer
}

// Server loads assets relative to a root directory.
//
// Loads are decoded on a worker pool and never block the caller; the returned
// handle fills in when decoding finishes. Failures are logged and recorded on the
// handle. While Watch runs, writes to loaded files trigger a reload once the file
// has been quiet for the watch delay.
type Server interface {
	// Root returns the asset root directory.
	Root() string

	// Load starts loading a path relative to the root, or returns the existing handle.
	//
	// Parameters:
	//   - path: slash separated path relative to the root
	//
	// Returns:
	//   - *Handle: the handle, possibly still loading
	Load(path string) *Handle

	// Get returns the handle for a path if Load was called for it.
	Get(path string) (*Handle, bool)

	// Reload decodes a loaded path again in the background.
	//
	// Parameters:
	//   - path: a path previously passed to Load
	Reload(path string)

	// OnReload registers a callback run after every successful load or reload,
	// including the first. Callbacks run on a worker goroutine.
	//
	// Parameters:
	//   - fn: the callback
	OnReload(fn func(*Handle))

	// Watch reloads changed files until ctx is cancelled.
	//
	// Parameters:
	//   - ctx: cancellation
	//
	// Returns:
	//   - error: watcher setup failure; nil after cancellation
	Watch(ctx context.Context) error

	// WaitIdle blocks until no load is in flight or ctx ends.
	WaitIdle(ctx context.Context) error
}

var _ Server = &server{}

// NewServer creates an asset server rooted at root.
//
// Parameters:
//   - root: directory containing the assets
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the newly created server
func NewServer(root string, options ...ServerBuilderOption) Server {
	s := &server{
		mu:         &sync.Mutex{},
		root:       root,
		workers:    2,
		watchDelay: 100 * time.Millisecond,
		logger:     log.Default(),
		handles:    make(map[string]*Handle),
		watched:    make(map[string]bool),
		debounce:   make(map[string]*time.Timer),
	}
	for _, option := range options {
		option(s)
	}
	s.pool = worker.NewDynamicWorkerPool(max(s.workers, 1), 256, 1*time.Second)
	return s
}

func (s *server) Root() string {
	return s.root
}

func (s *server) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

func (s *server) Load(path string) *Handle {
	s.mu.Lock()
	if h, ok := s.handles[path]; ok {
		s.mu.Unlock()
		return h
	}
	kind, kindErr := kindFor(path)
	h := newHandle(path, kind)
	s.handles[path] = h
	watcher := s.watcher
	s.mu.Unlock()

	if kindErr != nil {
		h.fail(kindErr)
		s.logger.Printf("asset: %v", kindErr)
		return h
	}
	if watcher != nil {
		s.watchDir(watcher, filepath.Dir(s.abs(path)))
	}
	s.submit(h)
	return h
}

func (s *server) Get(path string) (*Handle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.handles[path]
	return h, ok
}

func (s *server) Reload(path string) {
	h, ok := s.Get(path)
	if !ok || errors.Is(h.Err(), ErrUnsupportedFormat) {
		return
	}
	s.submit(h)
}

func (s *server) OnReload(fn func(*Handle)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// submit decodes a handle on the pool.
func (s *server) submit(h *Handle) {
	s.inflight.Add(1)
	id := int(s.taskID.Add(1))
	s.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer s.inflight.Add(-1)
			if err := s.decode(h); err != nil {
				h.fail(err)
				s.logger.Printf("asset: failed to load %s: %v", h.Path(), err)
				return nil, nil
			}
			s.notify(h)
			return nil, nil
		},
	})
}

func (s *server) decode(h *Handle) error {
	data, err := os.ReadFile(s.abs(h.Path()))
	if err != nil {
		return err
	}
	switch h.Kind() {
	case KindShader:
		h.setText(string(data))
	case KindTexture:
		tex, err := decodeTexture(h.Path(), data)
		if err != nil {
			return err
		}
		h.setTexture(tex)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, h.Path())
	}
	return nil
}

func (s *server) notify(h *Handle) {
	s.mu.Lock()
	listeners := append([]func(*Handle){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(h)
	}
}

func (s *server) WaitIdle(ctx context.Context) error {
	ticker := time.NewTicker(2 * time.Millisecond)
	defer ticker.Stop()
	for s.inflight.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

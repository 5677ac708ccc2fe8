package sprite

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"image/png"
	"io"
	"io/fs"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

//go:embed assets
var embedded embed.FS

// Built-in atlas ids.
const (
	RunnerAtlas = "runner"
)

// ErrNotFound is returned when no asset file exists for an atlas id.
var ErrNotFound = errors.New("sprite: atlas not found")

// Loader loads atlases by id and caches them. Concurrent loads of the same
// id share one underlying read.
type Loader struct {
	fsys   fs.FS
	logger *log.Logger

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Atlas

	loads atomic.Int64
}

// NewLoader creates a loader reading from fsys. A nil fsys uses the atlases
// embedded in the binary.
func NewLoader(fsys fs.FS, logger *log.Logger) *Loader {
	if fsys == nil {
		sub, err := fs.Sub(embedded, "assets")
		if err != nil {
			panic(err)
		}
		fsys = sub
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loader{
		fsys:   fsys,
		logger: logger,
		cache:  make(map[string]*Atlas),
	}
}

// Load returns the atlas for id, reading it on first use.
func (l *Loader) Load(ctx context.Context, id string) (*Atlas, error) {
	if a, ok := l.Get(id); ok {
		return a, nil
	}

	ch := l.group.DoChan(id, func() (any, error) {
		// A previous flight may have finished between Get and DoChan.
		if a, ok := l.Get(id); ok {
			return a, nil
		}
		a, err := l.read(id)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[id] = a
		l.mu.Unlock()
		l.logger.Debug("atlas loaded", "id", id, "sprites", len(a.order))
		return a, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Atlas), nil
	}
}

// Get returns a cached atlas without loading it.
func (l *Loader) Get(id string) (*Atlas, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.cache[id]
	return a, ok
}

// MustGet returns a cached atlas and panics when it was never loaded.
func (l *Loader) MustGet(id string) *Atlas {
	a, ok := l.Get(id)
	if !ok {
		panic(fmt.Sprintf("sprite: atlas %q used before it was loaded", id))
	}
	return a
}

// Loads returns how many times an atlas was actually read from storage.
func (l *Loader) Loads() int64 {
	return l.loads.Load()
}

func (l *Loader) read(id string) (*Atlas, error) {
	l.loads.Add(1)

	if f, err := l.fsys.Open(id + ".txt"); err == nil {
		defer f.Close()
		return ParseMask(id, f)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("sprite: open %s: %w", id, err)
	}

	f, err := l.fsys.Open(id + ".png")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sprite: open %s: %w", id, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("sprite: decode %s: %w", id, err)
	}
	return FromImage(id, img), nil
}

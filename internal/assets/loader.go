package assets

import (
	"context"
	"image"
	"sync"

	"gallery/internal/download"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	// Registers the webp decoder with image.Decode for imgio.Open.
	_ "golang.org/x/image/webp"
)

// State is where an image is in the load pipeline.
type State int

const (
	Unknown State = iota
	Pending
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is a finished decode. Exactly one of Image and Err is set.
type Result struct {
	Ref   string
	Image image.Image
	Err   error
}

// Options bounds decoding work. MaxSize 0 keeps images at their native size. Remote (http)
// refs are fetched into CacheDir before decoding.
type Options struct {
	MaxSize  int
	Workers  int
	CacheDir string
}

// Loader decodes image files in the background. Request never blocks; finished images are
// collected with Drain from the frame loop, which owns GPU upload. A failed decode is logged
// and reported, never retried.
type Loader struct {
	log      *zap.Logger
	maxSize  int
	cacheDir string
	sem      *semaphore.Weighted
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu     sync.Mutex
	states map[string]State
	done   []Result
}

// NewLoader returns a loader running at most opts.Workers decodes at a time.
func NewLoader(log *zap.Logger, opts Options) *Loader {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		log:      log,
		maxSize:  opts.MaxSize,
		cacheDir: opts.CacheDir,
		sem:      semaphore.NewWeighted(int64(workers)),
		ctx:      ctx,
		cancel:   cancel,
		states:   make(map[string]State),
	}
}

// Request starts loading ref unless it was already requested.
func (l *Loader) Request(ref string) {
	l.mu.Lock()
	if _, ok := l.states[ref]; ok {
		l.mu.Unlock()
		return
	}
	l.states[ref] = Pending
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := l.sem.Acquire(l.ctx, 1); err != nil {
			return
		}
		defer l.sem.Release(1)
		img, err := l.decode(ref)
		l.finish(Result{Ref: ref, Image: img, Err: err})
	}()
}

func (l *Loader) decode(ref string) (image.Image, error) {
	path := ref
	if download.IsRemote(ref) {
		p, err := download.Fetch(l.ctx, ref, l.cacheDir)
		if err != nil {
			return nil, err
		}
		l.log.Debug("image fetched", zap.String("image", ref), zap.String("path", p))
		path = p
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), l.maxSize)
	if w == b.Dx() && h == b.Dy() {
		return img, nil
	}
	return transform.Resize(img, w, h, transform.Linear), nil
}

func (l *Loader) finish(r Result) {
	state := Ready
	if r.Err != nil {
		state = Failed
		l.log.Warn("texture load failed, using placeholder", zap.String("image", r.Ref), zap.Error(r.Err))
	} else {
		b := r.Image.Bounds()
		l.log.Debug("texture decoded", zap.String("image", r.Ref), zap.Int("width", b.Dx()), zap.Int("height", b.Dy()))
	}
	l.mu.Lock()
	l.states[r.Ref] = state
	l.done = append(l.done, r)
	l.mu.Unlock()
}

// State reports the current state of ref.
func (l *Loader) State(ref string) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[ref]
}

// Drain returns results finished since the last call. It does not block.
func (l *Loader) Drain() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.done
	l.done = nil
	return out
}

// Close abandons queued decodes and waits for running ones.
func (l *Loader) Close() {
	l.cancel()
	l.wg.Wait()
}

// Fit scales w×h down to fit a limit×limit box, keeping aspect. limit <= 0 leaves it unchanged.
func Fit(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, clampMin(h*limit/w, 1)
	}
	return clampMin(w*limit/h, 1), limit
}

func clampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}

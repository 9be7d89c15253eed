package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/blackwell-systems/brewsync/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// debounceDelay collapses rapid successive saves into a single run.
const debounceDelay = 500 * time.Millisecond

// RunFunc reconciles the machine against the manifest.
type RunFunc func() error

// Watcher reapplies the manifest when it changes on disk.
type Watcher struct {
	manifestPath string
	run          RunFunc

	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

// New creates a watcher for the manifest at path. run is invoked once on
// Start and again after every change, never concurrently with itself.
func New(path string, run RunFunc) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("manifest path is empty")
	}
	if run == nil {
		return nil, errors.New("run callback is nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve manifest path: %w", err)
	}

	return &Watcher{
		manifestPath: abs,
		run:          run,
	}, nil
}

// Path returns the absolute manifest path being watched.
func (w *Watcher) Path() string {
	return w.manifestPath
}

// Start begins watching in a background goroutine and triggers the initial
// run. It returns immediately; call Stop to halt.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return errors.New("watcher already started")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the directory, not the file: editors save by writing a temp
	// file and renaming it over the manifest, which would orphan a watch
	// on the file itself.
	dir := filepath.Dir(w.manifestPath)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.fsw = fsw
	w.stopCh = make(chan struct{})
	w.started = true

	w.wg.Add(1)
	go w.loop()

	return nil
}

// Stop halts watching. Safe to call before Start and more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return nil
	}
	w.started = false

	close(w.stopCh)
	w.fsw.Close()
	w.wg.Wait()

	return nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	log := logging.GetLogger("watcher")

	// Apply once at startup so edits made while no watcher was running
	// still land.
	w.runOnce(log)

	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isManifestEvent(event) {
				continue
			}
			log.Debug().Str("op", event.Op.String()).Str("path", event.Name).Msg("manifest changed")
			if pending {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
			}
			debounce.Reset(debounceDelay)
			pending = true

		case <-debounce.C:
			pending = false
			w.runOnce(log)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watch error")

		case <-w.stopCh:
			return
		}
	}
}

// isManifestEvent reports whether the event concerns the watched manifest.
// Only writes, creates and renames count; a bare remove without a follow-up
// create would just make the run fail on a missing file.
func (w *Watcher) isManifestEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.manifestPath {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) runOnce(log zerolog.Logger) {
	start := time.Now()
	if err := w.run(); err != nil {
		log.Error().Err(err).Msg("reconcile failed")
		return
	}
	log.Info().Dur("took", time.Since(start)).Msg("reconcile complete")
}

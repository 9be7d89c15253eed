// Package watcher reapplies the manifest whenever it changes on disk.
//
// The Watcher holds an fsnotify watch on the manifest's directory (editors
// replace files by rename, so watching the file itself would go blind after
// the first save). Events for the manifest are debounced and then handed to
// a run callback that reconciles the machine. An initial run fires on
// Start, so a freshly edited manifest is applied even when the edit
// happened while no watcher was running.
//
// Key features:
//   - Directory-level fsnotify watch, rename-safe
//   - Debounced runs (rapid saves collapse into one reconcile)
//   - Daemon mode with PID file management
//   - Graceful shutdown with SIGTERM/SIGINT handling
//
// Example usage:
//
//	w, err := watcher.New(manifestPath, func() error {
//		return applyManifest(manifestPath)
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Watch in the foreground
//	if err := w.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer w.Stop()
//
//	// Or as a daemon
//	if err := w.StartDaemon("~/.brewsync/watch.pid", "~/.brewsync/watch.log"); err != nil {
//		log.Fatal(err)
//	}
package watcher

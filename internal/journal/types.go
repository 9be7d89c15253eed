package journal

import "time"

// Run kinds as stored in the journal.
const (
	KindUp      = "up"
	KindInstall = "install"
	KindWatch   = "watch"
)

// Run is one completed brewsync run.
type Run struct {
	ID             int64
	Kind           string
	StartedAt      time.Time
	Duration       time.Duration
	Installed      int
	AlreadyPresent int
	Upgraded       int
	Succeeded      bool
}

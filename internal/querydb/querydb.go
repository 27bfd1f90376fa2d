// Package querydb implements the incremental query runtime described in
// §5: a small Salsa-style database where derived values are memoized
// per revision, dependency reads are tracked automatically, and a
// concurrent mutation cancels in-flight reads of the snapshot they
// started from rather than blocking behind a lock.
//
// No entity or type in the rest of this module holds a pointer back
// into the database (Design Notes §9): every query function receives
// its database access explicitly through an *Exec, threaded in as a
// parameter, never stashed in a goroutine-local or package-global.
package querydb

import (
	"errors"
	"sync"
	"sync/atomic"

	"lark/internal/source"
	"lark/internal/trace"
)

// ErrCancelled is returned by a query read started against a snapshot
// that a later write has superseded. Per §5, cancelled computations
// unwind and are never cached.
var ErrCancelled = errors.New("querydb: snapshot cancelled by a newer revision")

// Database is the single mutable root. All mutation goes through
// SetFileText/RemoveFile, serialized by writerMu; readers never take
// that lock, so a long-running read never blocks a writer (§5).
type Database struct {
	writerMu sync.Mutex
	revision atomic.Uint64
	live     atomic.Pointer[atomic.Bool]

	files  *source.Map
	tracer atomic.Pointer[trace.Tracer]
}

// New creates an empty database at revision 0, tracing nothing until
// SetTracer attaches a real tracer.
func New() *Database {
	db := &Database{files: source.NewMap()}
	db.live.Store(new(atomic.Bool))
	var nop trace.Tracer = trace.Nop
	db.tracer.Store(&nop)
	return db
}

// SetTracer attaches t so every subsequent query invocation opens a
// trace.Span tagged with its query name and key (SPEC_FULL.md's
// "Logging & tracing" section).
func (d *Database) SetTracer(t trace.Tracer) {
	if t == nil {
		t = trace.Nop
	}
	d.tracer.Store(&t)
}

func (d *Database) tracerOrNop() trace.Tracer { return *d.tracer.Load() }

// Snapshot captures the database's current revision and cancellation
// cell. A Snapshot is immutable and safe to fork across goroutines. It
// does not copy file text: the file map is shared with the database,
// and a later write marks the snapshot cancelled, so query reads
// started against it after that write fail with ErrCancelled.
type Snapshot struct {
	db       *Database
	revision uint64
	live     *atomic.Bool
}

// Snapshot forks a read-only view of the database's current state.
func (d *Database) Snapshot() *Snapshot {
	return &Snapshot{db: d, revision: d.revision.Load(), live: d.live.Load()}
}

// Cancelled reports whether a write has superseded this snapshot.
func (s *Snapshot) Cancelled() bool { return s.live.Load() }

// Files exposes the snapshot's file-text source. Queries read through
// FileText (below) rather than this directly, so dependency tracking
// stays automatic; this accessor exists for callers outside any query
// (e.g. the parser's first call into a file).
func (s *Snapshot) Files() *source.Map { return s.db.files }

// SetFileText registers or replaces a file's text, advancing the
// revision and cancelling every snapshot forked before this call.
func (d *Database) SetFileText(name, text string) source.FileID {
	d.writerMu.Lock()
	defer d.writerMu.Unlock()
	d.cancelReaders()
	id := d.files.SetText(name, text)
	d.revision.Add(1)
	return id
}

// RemoveFile drops a file's text, advancing the revision the same way
// SetFileText does.
func (d *Database) RemoveFile(name string) {
	d.writerMu.Lock()
	defer d.writerMu.Unlock()
	d.cancelReaders()
	d.files.Remove(name)
	d.revision.Add(1)
}

func (d *Database) cancelReaders() {
	old := d.live.Swap(new(atomic.Bool))
	old.Store(true)
}

// depRef is a recorded dependency read: given a later snapshot, it
// reports whether the value it observed would now be different.
type depRef func(s *Snapshot) (changed bool, err error)

// tracker accumulates the dependency reads made while computing one
// query result.
type tracker struct {
	mu   sync.Mutex
	deps []depRef
}

func (t *tracker) record(d depRef) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.deps = append(t.deps, d)
	t.mu.Unlock()
}

// Exec is the capability object threaded through every query
// computation: it carries the snapshot to read against and the
// tracker recording what this particular computation depended on.
// Nothing else in the system is allowed to reach the database.
type Exec struct {
	snap *Snapshot
	tr   *tracker
}

// NewExec builds a root Exec for a snapshot, with no parent tracker
// (used by external callers, e.g. the db package's public entry points).
func NewExec(snap *Snapshot) *Exec { return &Exec{snap: snap} }

// Snapshot returns the snapshot this execution reads against.
func (ex *Exec) Snapshot() *Snapshot { return ex.snap }

// CheckCancelled returns ErrCancelled if a newer write has superseded
// the snapshot this Exec reads against. Long-running computations
// should call this between steps (§5).
func (ex *Exec) CheckCancelled() error {
	if ex.snap.Cancelled() {
		return ErrCancelled
	}
	return nil
}

// FileText is the sole input query: every derived query that reads a
// file's text does so through here, so edits are tracked automatically.
func FileText(ex *Exec, file source.FileID) string {
	text := ex.snap.db.files.Text(file)
	ex.tr.record(func(s *Snapshot) (bool, error) {
		return s.db.files.Text(file) != text, nil
	})
	return text
}

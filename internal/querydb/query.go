package querydb

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"lark/internal/trace"
)

// Query memoizes one derived computation, keyed by K, across
// revisions. Results are revalidated rather than blindly invalidated:
// a dependency that re-reads the same value keeps the cached result
// alive even after the file that produced it was re-saved unchanged.
type Query[K comparable, V any] struct {
	name    string
	compute func(ex *Exec, key K) (V, error)

	group singleflight.Group

	mu    sync.Mutex
	table map[K]*entry[V]
}

type entry[V any] struct {
	value    V
	err      error
	revision uint64
	deps     []depRef
}

// NewQuery registers a derived query under name. name labels the
// query's trace spans and prefixes its singleflight keys; every Query
// has its own dedup group, so in-flight dedup never crosses queries.
func NewQuery[K comparable, V any](name string, compute func(ex *Exec, key K) (V, error)) *Query[K, V] {
	return &Query[K, V]{name: name, compute: compute, table: make(map[K]*entry[V])}
}

// Get returns the memoized value for key, recomputing it only if
// revalidation shows at least one recorded dependency actually changed.
// The read is itself recorded as a dependency of ex's own computation,
// so queries compose without any query knowing about its callers.
//
// Per SPEC_FULL.md's tracing section, every invocation opens a
// trace.Span tagged with the query name and key; the span's end event
// carries whether the result was a cache hit, a recomputation, or a
// cancellation, so a trace consumer sees exactly what the query cache
// did without instrumenting every call site.
func (q *Query[K, V]) Get(ex *Exec, key K) (V, error) {
	t := ex.snap.db.tracerOrNop()
	span := trace.Begin(t, trace.ScopeModule, "query:"+q.name, 0)
	keyStr := fmt.Sprintf("%v", key)

	if err := ex.CheckCancelled(); err != nil {
		span.End(keyStr + " cancelled")
		var zero V
		return zero, err
	}

	if e, ok := q.cached(ex, key); ok {
		ex.tr.record(q.depOn(key, e.value))
		span.End(keyStr + " cache-hit")
		return e.value, e.err
	}

	sfKey := fmt.Sprintf("%s/%v", q.name, key)
	resAny, err, _ := q.group.Do(sfKey, func() (any, error) {
		return q.recompute(ex, key)
	})
	if err != nil {
		span.End(keyStr + " error")
		var zero V
		return zero, err
	}
	e := resAny.(*entry[V])
	ex.tr.record(q.depOn(key, e.value))
	span.End(keyStr + " recomputed")
	return e.value, e.err
}

// cached returns a usable entry for key: either already current for
// this revision, or current after revalidating its recorded deps.
func (q *Query[K, V]) cached(ex *Exec, key K) (*entry[V], bool) {
	q.mu.Lock()
	e, ok := q.table[key]
	q.mu.Unlock()
	if !ok {
		return nil, false
	}
	if e.revision == ex.snap.revision {
		return e, true
	}
	for _, dep := range e.deps {
		changed, err := dep(ex.snap)
		if err != nil || changed {
			return nil, false
		}
	}
	e.revision = ex.snap.revision
	return e, true
}

func (q *Query[K, V]) recompute(ex *Exec, key K) (*entry[V], error) {
	if e, ok := q.cached(ex, key); ok {
		return e, nil
	}
	if err := ex.CheckCancelled(); err != nil {
		return nil, err
	}
	childTr := &tracker{}
	child := &Exec{snap: ex.snap, tr: childTr}
	v, cerr := q.compute(child, key)
	e := &entry[V]{value: v, err: cerr, revision: ex.snap.revision, deps: childTr.deps}
	q.mu.Lock()
	q.table[key] = e
	q.mu.Unlock()
	return e, nil
}

// depOn builds the dependency closure recorded against a caller when
// it reads key: re-running this query later and comparing the result
// to observed is how staleness is detected without a type-erased
// registry of "everything that might have changed".
func (q *Query[K, V]) depOn(key K, observed V) depRef {
	return func(s *Snapshot) (bool, error) {
		ex := &Exec{snap: s}
		v, err := q.Get(ex, key)
		if err != nil {
			return true, err
		}
		return !reflect.DeepEqual(v, observed), nil
	}
}

// GetAll resolves keys concurrently via errgroup, short-circuiting on
// the first error (including ErrCancelled, so a mutation mid-batch
// stops the rest of the batch rather than returning partial results).
func (q *Query[K, V]) GetAll(ctx context.Context, ex *Exec, keys []K) ([]V, error) {
	t := ex.snap.db.tracerOrNop()
	span := trace.Begin(t, trace.ScopePass, "query:"+q.name+":all", 0)
	defer func() { span.End(fmt.Sprintf("%d keys", len(keys))) }()

	out := make([]V, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			v, err := q.Get(ex, key)
			if err != nil {
				return err
			}
			out[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

package querydb

import (
	"context"
	"errors"
	"testing"

	"lark/internal/source"
)

var errBoom = errors.New("boom")

func TestDerivedQueryIsMemoizedAcrossSameRevision(t *testing.T) {
	db := New()
	file := db.SetFileText("a.lark", "hello")

	calls := 0
	upper := NewQuery("upper", func(ex *Exec, f source.FileID) (string, error) {
		calls++
		text := FileText(ex, f)
		out := make([]byte, len(text))
		for i := range text {
			out[i] = text[i] - 32*byte(isLower(text[i]))
		}
		return string(out), nil
	})

	snap := db.Snapshot()
	ex := NewExec(snap)

	v1, err := upper.Get(ex, file)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := upper.Get(ex, file)
	if err != nil {
		t.Fatal(err)
	}
	if v1 != v2 || v1 != "HELLO" {
		t.Fatalf("got %q, %q", v1, v2)
	}
	if calls != 1 {
		t.Fatalf("expected 1 recomputation, got %d", calls)
	}
}

func isLower(b byte) int {
	if b >= 'a' && b <= 'z' {
		return 1
	}
	return 0
}

func TestDerivedQueryRevalidatesOnUnrelatedFile(t *testing.T) {
	db := New()
	a := db.SetFileText("a.lark", "x")
	_ = db.SetFileText("b.lark", "y")

	calls := 0
	echo := NewQuery("echo", func(ex *Exec, f source.FileID) (string, error) {
		calls++
		return FileText(ex, f), nil
	})

	snap1 := db.Snapshot()
	if _, err := echo.Get(NewExec(snap1), a); err != nil {
		t.Fatal(err)
	}

	db.SetFileText("b.lark", "y2") // a.lark's text is untouched

	snap2 := db.Snapshot()
	if _, err := echo.Get(NewExec(snap2), a); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected cached result to survive an unrelated edit, got %d recomputations", calls)
	}
}

func TestDerivedQueryRecomputesWhenItsFileChanges(t *testing.T) {
	db := New()
	a := db.SetFileText("a.lark", "x")

	calls := 0
	echo := NewQuery("echo2", func(ex *Exec, f source.FileID) (string, error) {
		calls++
		return FileText(ex, f), nil
	})

	if _, err := echo.Get(NewExec(db.Snapshot()), a); err != nil {
		t.Fatal(err)
	}
	db.SetFileText("a.lark", "x2")
	v, err := echo.Get(NewExec(db.Snapshot()), a)
	if err != nil {
		t.Fatal(err)
	}
	if v != "x2" || calls != 2 {
		t.Fatalf("expected recomputation to observe new text, got %q after %d calls", v, calls)
	}
}

func TestSnapshotCancelledByConcurrentWrite(t *testing.T) {
	db := New()
	file := db.SetFileText("a.lark", "x")
	snap := db.Snapshot()

	db.SetFileText("a.lark", "x2")

	if !snap.Cancelled() {
		t.Fatalf("snapshot taken before the write should be cancelled")
	}

	echo := NewQuery("echo3", func(ex *Exec, f source.FileID) (string, error) {
		return FileText(ex, f), nil
	})
	if _, err := echo.Get(NewExec(snap), file); err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestGetAllShortCircuitsOnError(t *testing.T) {
	db := New()
	a := db.SetFileText("a.lark", "x")
	b := db.SetFileText("b.lark", "y")

	failing := NewQuery("failing", func(ex *Exec, f source.FileID) (string, error) {
		text := FileText(ex, f)
		if text == "y" {
			return "", errBoom
		}
		return text, nil
	})

	ex := NewExec(db.Snapshot())
	if _, err := failing.GetAll(context.Background(), ex, []source.FileID{a, b}); err == nil {
		t.Fatalf("expected an error from the failing key")
	}
}

// Package source holds file text and byte-offset <-> line/column
// conversions for the compiler core. The core never reads the
// filesystem itself (per spec, paths are opaque strings); callers
// register text explicitly through Map.SetText.
package source

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// FileID identifies a registered file within a Map.
type FileID uint32

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

// IsValid reports whether the FileID refers to a real file.
func (id FileID) IsValid() bool { return id != NoFileID }

// SpanKind discriminates the three shapes a Span can take (§3).
type SpanKind uint8

const (
	// SpanReal is a concrete byte range within a named file.
	SpanReal SpanKind = iota
	// SpanSynthetic has no source location (e.g. built-in entities).
	SpanSynthetic
	// SpanEOF marks the end-of-file sentinel position.
	SpanEOF
)

// Span is either a real byte range, a synthetic placeholder, or an EOF
// marker. Two reals compose under To; mixing kinds collapses to Synthetic.
type Span struct {
	Kind  SpanKind
	File  FileID
	Start uint32
	End   uint32
}

// Synthetic is the canonical synthetic span.
var Synthetic = Span{Kind: SpanSynthetic}

// EOFSpan returns the EOF sentinel span for a file.
func EOFSpan(file FileID, at uint32) Span {
	return Span{Kind: SpanEOF, File: file, Start: at, End: at}
}

// Real builds a concrete span. Panics if start > end, mirroring the
// invariant in §3 ("start <= end").
func Real(file FileID, start, end uint32) Span {
	if start > end {
		panic("source: span start after end")
	}
	return Span{Kind: SpanReal, File: file, Start: start, End: end}
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Kind != SpanReal || s.Start == s.End
}

// To composes two spans: when both are Real and share a file, the result
// covers [min(start), max(end)]; otherwise it degrades to Synthetic.
func (s Span) To(other Span) Span {
	if s.Kind != SpanReal || other.Kind != SpanReal || s.File != other.File {
		return Synthetic
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Kind: SpanReal, File: s.File, Start: start, End: end}
}

// String renders a span for diagnostic sorting/dedup keys and debug logs.
func (s Span) String() string {
	switch s.Kind {
	case SpanReal:
		return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
	case SpanEOF:
		return fmt.Sprintf("%d:eof@%d", s.File, s.Start)
	default:
		return "synthetic"
	}
}

// File holds the registered text and derived line index for one name.
type File struct {
	ID      FileID
	Name    string
	Text    string
	lineIdx []uint32 // byte offsets of '\n', ascending
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Map stores file text by opaque name and resolves spans to positions.
// It is the incremental query system's sole source of "file text" input
// values (see querydb.FileText). Map itself is not concurrency-safe;
// callers mutate it only through the single-writer path in querydb.Database.
type Map struct {
	files []File
	index map[string]FileID
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[string]FileID)}
}

// SetText registers or replaces the text for name, returning its FileID.
// The FileID is stable across edits to the same name.
func (m *Map) SetText(name, text string) FileID {
	if id, ok := m.index[name]; ok {
		f := &m.files[id-1]
		f.Text = text
		f.lineIdx = buildLineIndex(text)
		return id
	}
	n, err := safecast.Conv[uint32](len(m.files))
	if err != nil {
		panic("source: too many files")
	}
	id := FileID(n + 1)
	m.files = append(m.files, File{
		ID:      id,
		Name:    name,
		Text:    text,
		lineIdx: buildLineIndex(text),
	})
	m.index[name] = id
	return id
}

// Remove drops the registered text for name, if any.
func (m *Map) Remove(name string) {
	id, ok := m.index[name]
	if !ok {
		return
	}
	delete(m.index, name)
	m.files[id-1] = File{}
}

// Lookup returns the FileID for a name, if registered.
func (m *Map) Lookup(name string) (FileID, bool) {
	id, ok := m.index[name]
	return id, ok
}

// Get returns the File record for id. Panics on an invalid id, matching
// the teacher's FileSet.Get contract of a total index.
func (m *Map) Get(id FileID) *File {
	return &m.files[id-1]
}

// Text is a convenience accessor for the registered text of id.
func (m *Map) Text(id FileID) string {
	if !id.IsValid() || int(id) > len(m.files) {
		return ""
	}
	return m.files[id-1].Text
}

// Line returns the 1-based line's text (without its trailing newline),
// for diagnostic context rendering. An out-of-range line returns "".
func (m *Map) Line(id FileID, line uint32) string {
	if !id.IsValid() || int(id) > len(m.files) {
		return ""
	}
	f := &m.files[id-1]
	var start uint32
	switch {
	case line <= 1:
		start = 0
	case int(line-2) < len(f.lineIdx):
		start = f.lineIdx[line-2] + 1
	default:
		return ""
	}
	end := uint32(len(f.Text))
	if int(line-1) < len(f.lineIdx) {
		end = f.lineIdx[line-1]
	}
	if start > end || int(start) > len(f.Text) {
		return ""
	}
	return f.Text[start:end]
}

// LineCount returns the number of lines in id's text (at least 1).
func (m *Map) LineCount(id FileID) uint32 {
	if !id.IsValid() || int(id) > len(m.files) {
		return 0
	}
	return uint32(len(m.files[id-1].lineIdx)) + 1
}

// Resolve converts a span's start/end offsets into line/column pairs.
func (m *Map) Resolve(span Span) (start, end LineCol) {
	if span.Kind != SpanReal && span.Kind != SpanEOF {
		return LineCol{}, LineCol{}
	}
	f := m.Get(span.File)
	return toLineCol(f.lineIdx, span.Start), toLineCol(f.lineIdx, span.End)
}

// ByteRange converts a 1-based line/column pair back to a byte offset
// within the named file.
func (m *Map) ByteRange(name string, line, col uint32) (uint32, bool) {
	id, ok := m.index[name]
	if !ok {
		return 0, false
	}
	f := &m.files[id-1]
	var lineStart uint32
	switch {
	case line <= 1:
		lineStart = 0
	case int(line-2) < len(f.lineIdx):
		lineStart = f.lineIdx[line-2] + 1
	default:
		return 0, false
	}
	return lineStart + col - 1, true
}

func buildLineIndex(text string) []uint32 {
	out := make([]uint32, 0, len(text)/32)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	i := sort.Search(len(lineIdx), func(k int) bool { return lineIdx[k] > off })
	if i == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	last := lineIdx[i-1]
	var start uint32
	if i-1 == 0 {
		start = 0
	} else {
		start = lineIdx[i-2] + 1
	}
	if off == last {
		return LineCol{Line: uint32(i), Col: last - start + 1}
	}
	start = last + 1
	return LineCol{Line: uint32(i + 1), Col: off - start + 1}
}

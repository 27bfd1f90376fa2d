// Package db is the External Collaborator Contract of §4.10/§6: the
// one surface outside code is meant to call. A caller mutates file
// text through SetFileText/RemoveFile, then forks a Snapshot and reads
// everything else — tokens, the AST, a function's lowered body, a
// checked type, the project's diagnostics — through it. Every read
// against one Snapshot is consistent with every other read against
// the same Snapshot, regardless of edits a concurrent caller makes in
// the meantime (§5).
package db

import (
	"context"

	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/hir"
	"lark/internal/parser"
	"lark/internal/querydb"
	"lark/internal/sema"
	"lark/internal/source"
	"lark/internal/trace"
	"lark/internal/types"
)

// Project owns the database and the process-wide interning tables. It
// is safe to call SetFileText/RemoveFile and Snapshot concurrently;
// the querydb.Database underneath serializes writers and cancels
// in-flight snapshots itself.
type Project struct {
	db   *querydb.Database
	ents *entity.Table

	parseQ *querydb.Query[source.FileID, parser.Result]
	lowerQ *querydb.Query[source.FileID, *lowered]
	checkQ *querydb.Query[source.FileID, *checked]
}

type lowered struct {
	Module *hir.Module
	Bag    *diag.Bag
}

type checked struct {
	Result *sema.Result
	Bag    *diag.Bag
}

// New creates an empty project with no files registered.
func New() *Project {
	p := &Project{db: querydb.New(), ents: entity.NewTable()}
	p.parseQ = querydb.NewQuery("parse", p.computeParse)
	p.lowerQ = querydb.NewQuery("lower", p.computeLower)
	p.checkQ = querydb.NewQuery("check", p.computeCheck)
	return p
}

// SetFileText registers or replaces one file's text, advancing the
// project's revision.
func (p *Project) SetFileText(path, text string) source.FileID {
	return p.db.SetFileText(path, text)
}

// RemoveFile drops a file's text, advancing the revision the same way.
func (p *Project) RemoveFile(path string) { p.db.RemoveFile(path) }

// SetTracer attaches t so every query invocation against this project
// opens a trace.Span, as described in SPEC_FULL.md's tracing section.
func (p *Project) SetTracer(t trace.Tracer) { p.db.SetTracer(t) }

// Snapshot forks a consistent read-only view of the project.
func (p *Project) Snapshot() *Session {
	return &Session{p: p, ex: querydb.NewExec(p.db.Snapshot())}
}

func (p *Project) computeParse(ex *querydb.Exec, file source.FileID) (parser.Result, error) {
	text := querydb.FileText(ex, file)
	return parser.ParseFile(file, text, p.ents), nil
}

func (p *Project) computeLower(ex *querydb.Exec, file source.FileID) (*lowered, error) {
	res, err := p.parseQ.Get(ex, file)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(parser.MaxErrors)
	mod := hir.Lower(res, p.ents, bag)
	bag.Merge(res.Bag)
	return &lowered{Module: mod, Bag: bag}, nil
}

func (p *Project) computeCheck(ex *querydb.Exec, file source.FileID) (*checked, error) {
	lw, err := p.lowerQ.Get(ex, file)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(parser.MaxErrors)
	result := sema.Check(lw.Module, p.ents, bag)
	bag.Merge(lw.Bag)
	return &checked{Result: result, Bag: bag}, nil
}

// Session is a Snapshot's read handle: every method below is a pure
// query over the state captured when Snapshot was taken.
type Session struct {
	p  *Project
	ex *querydb.Exec
}

// Files exposes the snapshot's file-text source, e.g. for rendering
// diagnostics against the exact text this session read.
func (s *Session) Files() *source.Map { return s.ex.Snapshot().Files() }

// Cancelled reports whether a write has superseded this session; a
// long-running caller (e.g. building errors_for_project over a large
// project) should check this between files.
func (s *Session) Cancelled() bool { return s.ex.Snapshot().Cancelled() }

// ItemSummary describes one top-level declaration for listing purposes.
type ItemSummary struct {
	Entity entity.ID
	Kind   entity.ItemKind
	Name   string
	Span   source.Span
}

// ItemsInFile returns the top-level items declared in file, in source
// order.
func (s *Session) ItemsInFile(file source.FileID) ([]ItemSummary, error) {
	res, err := s.p.parseQ.Get(s.ex, file)
	if err != nil {
		return nil, err
	}
	out := make([]ItemSummary, 0, len(res.Items))
	for _, it := range res.Items {
		ent := s.p.ents.Get(it.Entity)
		out = append(out, ItemSummary{Entity: it.Entity, Kind: ent.ItemKind, Name: ent.Text, Span: it.FullSpan})
	}
	return out, nil
}

// ChildEntities returns the entities named directly underneath parent:
// a file's items, or a struct's fields. Everything else (a function, a
// lang item, an error placeholder) has no named children.
func (s *Session) ChildEntities(parent entity.ID) ([]entity.ID, error) {
	ent := s.p.ents.Get(parent)
	switch ent.Kind {
	case entity.KindInputFile:
		items, err := s.ItemsInFile(ent.File)
		if err != nil {
			return nil, err
		}
		out := make([]entity.ID, len(items))
		for i, it := range items {
			out[i] = it.Entity
		}
		return out, nil
	case entity.KindItemName:
		if ent.ItemKind != entity.ItemStruct {
			return nil, nil
		}
		file, ok := s.p.ents.InputFile(parent)
		if !ok {
			return nil, nil
		}
		lw, err := s.p.lowerQ.Get(s.ex, file)
		if err != nil {
			return nil, err
		}
		def, ok := lw.Module.StructByEntity(parent)
		if !ok {
			return nil, nil
		}
		out := make([]entity.ID, len(def.Fields))
		for i, f := range def.Fields {
			out[i] = f.Entity
		}
		return out, nil
	default:
		return nil, nil
	}
}

// AstOfFile returns one file's parsed items along with its parse-phase
// diagnostics.
func (s *Session) AstOfFile(file source.FileID) (parser.Result, error) {
	return s.p.parseQ.Get(s.ex, file)
}

// FnBody returns a function's lowered body, resolving fn's owning file
// automatically.
func (s *Session) FnBody(fn entity.ID) (*hir.FuncDef, error) {
	file, ok := s.p.ents.InputFile(fn)
	if !ok {
		return nil, nil
	}
	lw, err := s.p.lowerQ.Get(s.ex, file)
	if err != nil {
		return nil, err
	}
	def, _ := lw.Module.FuncByEntity(fn)
	return def, nil
}

// Ty returns the checked type of one expression within fn's body.
func (s *Session) Ty(fn entity.ID, id hir.ExprID) (types.Ty, bool, error) {
	file, ok := s.p.ents.InputFile(fn)
	if !ok {
		return types.Ty{}, false, nil
	}
	ck, err := s.p.checkQ.Get(s.ex, file)
	if err != nil {
		return types.Ty{}, false, err
	}
	ty, ok := ck.Result.ExprType(fn, id)
	return ty, ok, nil
}

// Signature returns a function's checked parameter and return types.
func (s *Session) Signature(fn entity.ID) (types.Signature, bool, error) {
	file, ok := s.p.ents.InputFile(fn)
	if !ok {
		return types.Signature{}, false, nil
	}
	ck, err := s.p.checkQ.Get(s.ex, file)
	if err != nil {
		return types.Signature{}, false, err
	}
	sig, ok := ck.Result.Signatures[fn]
	return sig, ok, nil
}

// ErrorsForProject gathers every diagnostic (lex through type-check)
// across files, resolving them concurrently via GetAll and returning a
// single sorted, deduplicated bag.
func (s *Session) ErrorsForProject(ctx context.Context, files []source.FileID) (*diag.Bag, error) {
	checks, err := s.p.checkQ.GetAll(ctx, s.ex, files)
	if err != nil {
		return nil, err
	}
	out := diag.NewBag(parser.MaxErrors * len(files))
	for _, c := range checks {
		out.Merge(c.Bag)
	}
	out.Sort()
	out.Dedup()
	return out, nil
}

// Hover is the information returned for a source position: the
// smallest enclosing expression's checked type, if one covers it.
type Hover struct {
	Found bool
	Expr  hir.ExprID
	Fn    entity.ID
	Ty    types.Ty
}

// HoverAtPosition implements §6's hover_at(path, line, column) entry
// point: it resolves the 1-based line/column back to a byte offset
// within path, finds the top-level function whose span contains that
// offset, and defers to HoverAt for the innermost-expression lookup.
// A path that isn't registered, or a position outside every function,
// reports Hover{Found: false} rather than an error.
func (s *Session) HoverAtPosition(path string, line, col uint32) (Hover, error) {
	file, ok := s.Files().Lookup(path)
	if !ok {
		return Hover{}, nil
	}
	offset, ok := s.Files().ByteRange(path, line, col)
	if !ok {
		return Hover{}, nil
	}
	items, err := s.ItemsInFile(file)
	if err != nil {
		return Hover{}, err
	}
	for _, it := range items {
		if it.Kind != entity.ItemFunction {
			continue
		}
		if it.Span.Kind != source.SpanReal || offset < it.Span.Start || offset > it.Span.End {
			continue
		}
		return s.HoverAt(it.Entity, offset)
	}
	return Hover{}, nil
}

// HoverAt finds the innermost expression in fn's body containing
// offset and returns its checked type, for an editor hover request.
func (s *Session) HoverAt(fn entity.ID, offset uint32) (Hover, error) {
	body, err := s.FnBody(fn)
	if err != nil || body == nil {
		return Hover{}, err
	}
	file, ok := s.p.ents.InputFile(fn)
	if !ok {
		return Hover{}, nil
	}
	ck, err := s.p.checkQ.Get(s.ex, file)
	if err != nil {
		return Hover{}, err
	}

	best := hir.NoExpr
	bestLen := ^uint32(0)
	for id := 1; id < body.Arena.Len(); id++ {
		e := body.Arena.Get(hir.ExprID(id))
		if e.Span.Kind != source.SpanReal || offset < e.Span.Start || offset > e.Span.End {
			continue
		}
		length := e.Span.End - e.Span.Start
		if length < bestLen {
			bestLen = length
			best = hir.ExprID(id)
		}
	}
	if best == hir.NoExpr {
		return Hover{}, nil
	}
	ty, ok := ck.Result.ExprType(fn, best)
	if !ok {
		return Hover{}, nil
	}
	return Hover{Found: true, Expr: best, Fn: fn, Ty: ty}, nil
}

// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Command i18n_extract scans the module for translatable strings and writes the
gettext template po/testpro.pot.

Strings are found in calls to i18n.Tr, TrC, TrN and TrNC, in conversions to
i18n.MsgKey, and wherever a constant is passed or assigned where an
i18n.MsgKey is expected.
*/
package main

import (
	"cmp"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/testpro/testpro/config"
)

var errLoad = errors.New("failed to load packages due to errors")

// key identifies a gettext entry. plural is empty for non-plural entries.
type key struct {
	ctx    string
	id     string
	plural string
}

func (k key) compare(o key) int {
	return cmp.Or(
		strings.Compare(k.ctx, o.ctx),
		strings.Compare(k.id, o.id),
		strings.Compare(k.plural, o.plural),
	)
}

type ref struct {
	file string
	line int
}

func (r ref) compare(o ref) int {
	return cmp.Or(strings.Compare(r.file, o.file), cmp.Compare(r.line, o.line))
}

// trArgs gives the argument positions of a translation function.
// A negative index means the function has no such argument.
type trArgs struct {
	ctx, id, plural int
}

var trFuncs = map[string]trArgs{
	"Tr":   {ctx: -1, id: 1, plural: -1},
	"TrC":  {ctx: 1, id: 2, plural: -1},
	"TrN":  {ctx: -1, id: 1, plural: 2},
	"TrNC": {ctx: 1, id: 2, plural: 3},
}

type extractor struct {
	refs     map[key][]ref
	root     string
	fset     *token.FileSet
	info     *types.Info
	i18nPkgs map[string]struct{}
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	outPath := flag.String("o", "po/testpro.pot", "output file")
	flag.Parse()

	if err := run(*outPath); err != nil {
		log.Fatal().Err(err).Msg("Extraction failed")
	}
}

func run(outPath string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	pkgs, err := loadPackages(wd, "./...")
	if err != nil {
		return err
	}

	refs := extractRefs(pkgs, nearestGoModDir(wd), findI18nPkgPaths(pkgs))

	log.Info().
		Int("packages", len(pkgs)).
		Int("messages", len(refs)).
		Str("output", outPath).
		Msg("Extracted messages")

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	if err := writePOT(f, refs, config.BuildVersion, time.Now()); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return f.Close()
}

// loadPackages type-checks every buildable package matching patterns under dir.
func loadPackages(dir string, patterns ...string) ([]*packages.Package, error) {
	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Dir: dir}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if packages.PrintErrors(pkgs) > 0 {
		return nil, errLoad
	}

	return pkgs, nil
}

// writePOT writes a gettext template for refs to w. Entries are ordered by
// context, msgid and plural; references by file and line.
func writePOT(w io.Writer, refs map[key][]ref, version string, now time.Time) error {
	var b strings.Builder

	writeHeader(&b, version, now)

	keys := slices.SortedFunc(maps.Keys(refs), key.compare)

	for i, k := range keys {
		if i > 0 {
			b.WriteByte('\n')
		}

		rs := slices.Clone(refs[k])
		slices.SortFunc(rs, ref.compare)

		b.WriteString("#:")

		for _, r := range slices.Compact(rs) {
			fmt.Fprintf(&b, " %s:%d", r.file, r.line)
		}

		b.WriteByte('\n')

		if k.ctx != "" {
			fmt.Fprintf(&b, "msgctxt %q\n", k.ctx)
		}

		fmt.Fprintf(&b, "msgid %q\n", k.id)

		if k.plural == "" {
			b.WriteString("msgstr \"\"\n")

			continue
		}

		fmt.Fprintf(&b, "msgid_plural %q\n", k.plural)
		b.WriteString("msgstr[0] \"\"\nmsgstr[1] \"\"\n")
	}

	_, err := io.WriteString(w, b.String())

	return err
}

func writeHeader(b *strings.Builder, version string, now time.Time) {
	lines := []string{
		"Project-Id-Version: TestPro " + version,
		"POT-Creation-Date: " + now.UTC().Format("2006-01-02 15:04+0000"),
		"Language: en",
		"Report-Msgid-Bugs-To: https://codeberg.org/testpro/testpro/issues",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
		"Plural-Forms: nplurals=2; plural=(n != 1);",
	}

	b.WriteString("msgid \"\"\nmsgstr \"\"\n")

	for _, l := range lines {
		fmt.Fprintf(b, "\"%s\\n\"\n", l)
	}

	b.WriteByte('\n')
}

// extractRefs walks the syntax of pkgs and collects every translatable
// constant, keyed by entry. File names are made relative to root.
func extractRefs(pkgs []*packages.Package, root string, i18nPkgs map[string]struct{}) map[key][]ref {
	refs := map[key][]ref{}

	for _, p := range pkgs {
		if p.TypesInfo == nil {
			continue
		}

		e := &extractor{refs: refs, root: root, fset: p.Fset, info: p.TypesInfo, i18nPkgs: i18nPkgs}

		for _, f := range p.Syntax {
			ast.Inspect(f, func(n ast.Node) bool {
				switch x := n.(type) {
				case *ast.CallExpr:
					e.call(x)
				case *ast.CompositeLit:
					e.compositeLit(x)
				}

				return true
			})
		}
	}

	return refs
}

// findI18nPkgPaths returns the paths of loaded packages named i18n that
// declare a string-based MsgKey type. Calls are matched against these
// paths so that import aliases do not matter.
func findI18nPkgPaths(pkgs []*packages.Package) map[string]struct{} {
	out := make(map[string]struct{})

	for _, p := range pkgs {
		if p.Name != "i18n" || p.Types == nil {
			continue
		}

		tn, ok := p.Types.Scope().Lookup("MsgKey").(*types.TypeName)
		if !ok {
			continue
		}

		if basic, ok := tn.Type().Underlying().(*types.Basic); ok && basic.Kind() == types.String {
			out[p.PkgPath] = struct{}{}
		}
	}

	return out
}

// isMsgKey reports whether t is the MsgKey type of a known i18n package.
func (e *extractor) isMsgKey(t types.Type) bool {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil || named.Obj().Name() != "MsgKey" {
		return false
	}

	_, ok = e.i18nPkgs[named.Obj().Pkg().Path()]

	return ok
}

// constString returns the value of expr if it is a constant string expression.
func (e *extractor) constString(expr ast.Expr) (string, bool) {
	tv, ok := e.info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// addIfMsgKey records expr when t is MsgKey and expr is a constant.
func (e *extractor) addIfMsgKey(t types.Type, expr ast.Expr) {
	if !e.isMsgKey(t) {
		return
	}

	if msg, ok := e.constString(expr); ok {
		e.add(expr.Pos(), key{id: msg})
	}
}

func (e *extractor) compositeLit(x *ast.CompositeLit) {
	t := e.info.TypeOf(x)
	if t == nil {
		return
	}

	if p, ok := t.Underlying().(*types.Pointer); ok {
		t = p.Elem()
	}

	switch u := t.Underlying().(type) {
	case *types.Map:
		for _, elt := range x.Elts {
			if kv, ok := elt.(*ast.KeyValueExpr); ok {
				e.addIfMsgKey(u.Key(), kv.Key)
				e.addIfMsgKey(u.Elem(), kv.Value)
			}
		}
	case *types.Slice:
		e.elements(u.Elem(), x.Elts)
	case *types.Array:
		e.elements(u.Elem(), x.Elts)
	case *types.Struct:
		for i, elt := range x.Elts {
			kv, keyed := elt.(*ast.KeyValueExpr)
			if !keyed {
				if i < u.NumFields() {
					e.addIfMsgKey(u.Field(i).Type(), elt)
				}

				continue
			}

			id, ok := kv.Key.(*ast.Ident)
			if !ok {
				continue
			}

			for j := range u.NumFields() {
				if f := u.Field(j); f.Name() == id.Name {
					e.addIfMsgKey(f.Type(), kv.Value)
				}
			}
		}
	}
}

func (e *extractor) elements(elem types.Type, elts []ast.Expr) {
	for _, elt := range elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			elt = kv.Value
		}

		e.addIfMsgKey(elem, elt)
	}
}

func (e *extractor) call(x *ast.CallExpr) {
	// MsgKey("...")
	if tv, ok := e.info.Types[x.Fun]; ok && tv.IsType() {
		if len(x.Args) == 1 {
			e.addIfMsgKey(tv.Type, x.Args[0])
		}

		return
	}

	if e.translationCall(x) {
		return
	}

	sig, ok := e.info.TypeOf(x.Fun).(*types.Signature)
	if !ok || sig.Params().Len() == 0 {
		return
	}

	params := sig.Params()
	last := params.Len() - 1

	for i, arg := range x.Args {
		switch {
		case sig.Variadic() && i >= last:
			// f(xs...) is picked up by the composite literal, if any.
			if x.Ellipsis.IsValid() {
				continue
			}

			e.addIfMsgKey(params.At(last).Type().(*types.Slice).Elem(), arg)
		case i <= last:
			e.addIfMsgKey(params.At(i).Type(), arg)
		}
	}
}

// translationCall records the msgid of a call to one of trFuncs.
// It reports whether x was such a call.
func (e *extractor) translationCall(x *ast.CallExpr) bool {
	sel, ok := x.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	fn, ok := e.info.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}

	if _, ok := e.i18nPkgs[fn.Pkg().Path()]; !ok {
		return false
	}

	args, ok := trFuncs[fn.Name()]
	if !ok {
		return false
	}

	arg := func(i int) (string, bool) {
		if i < 0 {
			return "", true
		}

		if i >= len(x.Args) {
			return "", false
		}

		return e.constString(x.Args[i])
	}

	ctx, okCtx := arg(args.ctx)
	id, okID := arg(args.id)
	plural, okPlural := arg(args.plural)

	if okCtx && okID && okPlural {
		e.add(x.Args[args.id].Pos(), key{ctx: ctx, id: id, plural: plural})
	}

	return true
}

func (e *extractor) add(pos token.Pos, k key) {
	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.root, file); err == nil {
		file = rel
	}

	e.refs[k] = append(e.refs[k], ref{file: filepath.ToSlash(file), line: p.Line})
}

// nearestGoModDir returns the closest directory at or above start holding a
// go.mod, or start itself.
func nearestGoModDir(start string) string {
	for dir := filepath.Clean(start); ; {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}

		dir = parent
	}
}

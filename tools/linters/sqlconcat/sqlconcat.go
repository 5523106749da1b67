// Package sqlconcat provides a linter that requires SQL passed to query
// methods to be a compile-time constant.
//
// Repositories keep their statements in const blocks and bind values as
// arguments. A query built with + or fmt.Sprintf at the call site is
// reported.
//
// Example violations:
//
//	pool.Exec(ctx, "DELETE FROM todos WHERE id = "+id)      // Bad
//	pool.Exec(ctx, deleteTodoSQL, id)                        // Good
//
//	db.GetContext(ctx, &row, fmt.Sprintf(selectSQL, table)) // Bad
//
// The linter respects //nolint and //nolint:sqlconcat comments.
package sqlconcat

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer reports non-constant SQL passed to query methods.
var Analyzer = &analysis.Analyzer{
	Name: "sqlconcat",
	Doc:  "checks that SQL passed to Exec/Query/Get/Select methods is a constant string",
	Run:  run,
}

// queryArg maps a method name (without a Context suffix) to the index of
// its SQL argument when no context.Context is passed first.
var queryArg = map[string]int{
	"Exec":     0,
	"Query":    0,
	"QueryRow": 0,
	"Get":      1,
	"Select":   1,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			// Only method calls; package functions such as fmt.Sprintf are skipped.
			if _, isMethod := pass.TypesInfo.Selections[sel]; !isMethod {
				return true
			}

			idx, ok := queryArg[strings.TrimSuffix(sel.Sel.Name, "Context")]
			if !ok {
				return true
			}
			if len(call.Args) > 0 && isContext(pass.TypesInfo.TypeOf(call.Args[0])) {
				idx++
			}
			if idx >= len(call.Args) {
				return true
			}

			arg := call.Args[idx]
			if !isString(pass.TypesInfo.TypeOf(arg)) {
				return true
			}
			if tv, ok := pass.TypesInfo.Types[arg]; ok && tv.Value != nil {
				return true
			}

			if hasNolintComment(pass, file, call) {
				return true
			}

			pass.Reportf(arg.Pos(), "SQL passed to %s must be a constant; bind values as arguments", sel.Sel.Name)
			return true
		})
	}

	return nil, nil
}

func isContext(t types.Type) bool {
	if t == nil {
		return false
	}
	named, ok := t.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == "context" && obj.Name() == "Context"
}

func isString(t types.Type) bool {
	if t == nil {
		return false
	}
	basic, ok := t.Underlying().(*types.Basic)
	return ok && basic.Info()&types.IsString != 0
}

// hasNolintComment reports a //nolint or //nolint:sqlconcat comment on the
// line of node or the line before it.
func hasNolintComment(pass *analysis.Pass, file *ast.File, node ast.Node) bool {
	line := pass.Fset.Position(node.Pos()).Line

	for _, cg := range file.Comments {
		for _, comment := range cg.List {
			commentLine := pass.Fset.Position(comment.Pos()).Line
			if commentLine != line && commentLine != line-1 {
				continue
			}
			text := comment.Text
			if !strings.Contains(text, "nolint") {
				continue
			}
			if !strings.Contains(text, ":") || strings.Contains(text, "sqlconcat") {
				return true
			}
		}
	}

	return false
}

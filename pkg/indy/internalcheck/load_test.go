package internalcheck

import (
	"go/ast"
	"go/token"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/sbca/indy-go"

func load(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	pkgs, err := packages.Load(&packages.Config{Mode: mode}, modulePath+"/pkg/indy/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatalf("packages contain errors")
	}
	return pkgs
}

// qualifiedCall is a call of a package-level function from another package.
type qualifiedCall struct {
	pkgPath string
	name    string
	call    *ast.CallExpr
	pos     token.Position
}

// eachQualifiedCall reports every pkg.Func(...) call in the loaded syntax.
func eachQualifiedCall(t *testing.T, fn func(qualifiedCall)) {
	t.Helper()
	pkgs := load(t, packages.NeedSyntax|packages.NeedTypes|packages.NeedTypesInfo|packages.NeedFiles|packages.NeedName)
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj := pkg.TypesInfo.Uses[sel.Sel]
				if obj == nil || obj.Pkg() == nil || obj.Parent() != obj.Pkg().Scope() {
					return true
				}
				fn(qualifiedCall{
					pkgPath: obj.Pkg().Path(),
					name:    obj.Name(),
					call:    call,
					pos:     pkg.Fset.Position(call.Pos()),
				})
				return true
			})
		}
	}
}

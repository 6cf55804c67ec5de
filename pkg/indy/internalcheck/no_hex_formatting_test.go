package internalcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"strconv"
	"strings"
	"testing"
)

// Wallet keys, seeds and message buffers travel through command arguments;
// none of them may be hex dumped into errors or logs.
func TestNoHexFormatting(t *testing.T) {
	var findings []string
	eachQualifiedCall(t, func(c qualifiedCall) {
		idx, ok := formatArg(c.pkgPath, c.name)
		if !ok || len(c.call.Args) <= idx {
			return
		}
		lit, ok := c.call.Args[idx].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return
		}
		format, err := strconv.Unquote(lit.Value)
		if err != nil {
			return
		}
		if strings.Contains(format, "%x") || strings.Contains(format, "%X") {
			findings = append(findings, fmt.Sprintf("%s: avoid %%x formatting of command data", c.pos))
		}
	})
	if len(findings) > 0 {
		t.Fatalf("command data policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func TestNoDirectPrinting(t *testing.T) {
	var findings []string
	eachQualifiedCall(t, func(c qualifiedCall) {
		if printsDirectly(c.pkgPath, c.name) {
			findings = append(findings, fmt.Sprintf("%s: log through pkg/indy/logging instead of %s.%s", c.pos, c.pkgPath, c.name))
		}
	})
	if len(findings) > 0 {
		t.Fatalf("logging policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

// formatArg returns the index of the format string argument.
func formatArg(pkgPath, name string) (int, bool) {
	if pkgPath != "fmt" {
		return 0, false
	}
	switch name {
	case "Errorf", "Sprintf":
		return 0, true
	case "Fprintf":
		return 1, true
	}
	return 0, false
}

func printsDirectly(pkgPath, name string) bool {
	switch pkgPath {
	case "fmt":
		return name == "Print" || name == "Printf" || name == "Println"
	case "log":
		return true
	}
	return false
}

package sandbox

import (
	"fmt"

	"github.com/isdmx/snipbox/lang"
)

// deniedCalls are callable names rejected wherever they appear, as a
// bare function or as a method on any receiver.
var deniedCalls = map[string]struct{}{
	"eval":   {},
	"exec":   {},
	"system": {},
}

// CheckSnippet enforces the allow-list policy over a parsed snippet:
// every `use` must name an allowed module, and no call may target a
// denied name. It runs before any evaluation; the first violation wins.
func CheckSnippet(prog *lang.Program, allowedModules []string) error {
	allowed := make(map[string]struct{}, len(allowedModules))
	for _, m := range allowedModules {
		allowed[m] = struct{}{}
	}

	var violation error
	lang.Inspect(prog, func(n lang.Node) bool {
		if violation != nil {
			return false
		}
		switch n := n.(type) {
		case *lang.UseStatement:
			if _, ok := allowed[n.Module]; !ok {
				violation = fmt.Errorf("module %q is not allowed", n.Module)
				return false
			}
		case *lang.CallExpr:
			if name := calleeName(n.Callee); name != "" {
				if _, ok := deniedCalls[name]; ok {
					violation = fmt.Errorf("call to %q is not allowed", name)
					return false
				}
			}
		}
		return true
	})
	return violation
}

// calleeName extracts the name a call targets: the identifier for f(...)
// or the attribute for x.m(...). Other callee shapes have no name.
func calleeName(callee lang.Expr) string {
	switch c := callee.(type) {
	case *lang.Ident:
		return c.Name
	case *lang.AttrExpr:
		return c.Name
	default:
		return ""
	}
}

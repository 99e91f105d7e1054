package lang

// Inspect traverses the syntax tree rooted at node in depth-first
// order, calling f for each node. If f returns false the children of
// that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, stmt := range n.Statements {
			Inspect(stmt, f)
		}
	case *AssignStatement:
		Inspect(n.Value, f)
	case *ExprStatement:
		Inspect(n.Expr, f)
	case *ListLit:
		for _, elem := range n.Elems {
			Inspect(elem, f)
		}
	case *AttrExpr:
		Inspect(n.Target, f)
	case *IndexExpr:
		Inspect(n.Target, f)
		Inspect(n.Index, f)
	case *CallExpr:
		Inspect(n.Callee, f)
		for _, arg := range n.Args {
			Inspect(arg, f)
		}
	case *UnaryExpr:
		Inspect(n.Operand, f)
	case *BinaryExpr:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	}
}

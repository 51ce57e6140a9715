// Package expr is a small symbolic expression library whose printed LaTeX
// feeds the render pipeline.
//
// Expressions are trees of constants, sums, products and negations.
// Subtraction is a sum with a negated term. Each node can be printed as
// plain text or as LaTeX, with parentheses only where precedence needs them:
//
//	x := expr.MustConstant("x")
//	e := expr.Sub(expr.Mul(x, expr.MustConstant(`\pi`)), expr.Add(x, x))
//	expr.Text(e)  // x * π - (x + x)
//	expr.LaTeX(e) // x \pi-\left(x+x\right)
//
// Simplifications return a Step tree describing each rewrite, with the
// rewritten part of the expression underlined:
//
//	fmt.Println(expr.FlattenSteps(e))
package expr

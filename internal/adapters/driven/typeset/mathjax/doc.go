// Package mathjax provides an in-process typesetting engine that follows
// the MathJax v2 page contract.
//
// For every math script it processes, the engine assigns the script the
// id "MathJax-Element-N" and inserts two siblings before it: an empty
// span.MathJax_Preview and the rendered frame span with id
// "MathJax-Element-N-Frame". Hiding the raw scripts afterwards is the
// caller's job. Typesetting is idempotent: a processed script keeps its
// id and only has its frame refreshed.
//
// Rendering is textual: the frame carries the escaped notation in the
// configured font. Layout of the notation is out of scope.
package mathjax

/*
Package domain holds the core types of the answer-refinement loop: the
per-invocation conversation State, the judge Verdict contract, the term
Dictionary supplied to refinements, lifecycle events for observability, and
the error taxonomy shared by the engine and its adapters.

The package has no dependencies on ports or adapters; everything here is
plain data plus the few invariants the loop relies on (append-before-replace
question history, the lenient "Pass" token match, the EmptyResult sentinel).
*/
package domain

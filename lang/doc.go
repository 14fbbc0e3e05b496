// Package lang implements the placeholder language used by page bindings: a
// read-only [Value] model, dotted-path resolution over that model, and a
// scanner for brace-delimited placeholders embedded in text.
//
// # Values
//
// A [Value] is one of four kinds:
//
//   - [KindUndefined]: the absent-value sentinel [Undefined]
//   - [KindScalar]: a string leaf
//   - [KindSequence]: an ordered list of values
//   - [KindMapping]: an ordered set of string keys mapped to values
//
// Values are immutable once constructed and safe to share between
// goroutines.
//
// # Paths
//
// A dotted path such as MVPInstance.name names a location in a value. Paths
// are resolved strictly left to right: the first segment is looked up in the
// current mapping and the remainder is resolved against the result. Sequence
// elements are addressed by decimal index:
//
//	chart.dependencies.0.version
//
// [Resolve] never fails. Missing keys and malformed paths resolve to
// [Undefined], which renders as the empty string. [Lookup] performs the same
// walk but reports a [*PathError] describing where it stopped.
//
// # Placeholders
//
// [Placeholders] yields the contents of every {...} span in a string:
//
//	for token := range lang.Placeholders("Instance: {MVPInstance.name}") {
//		fmt.Println(token) // MVPInstance.name
//	}
//
// Braces do not nest and cannot be escaped.
package lang

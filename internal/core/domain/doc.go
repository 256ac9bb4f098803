// Package domain defines the core entities for rubric editing and grading.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Rubric: An ordered list of scoring rows
//   - Row: One scoring criterion with its ordered cells
//   - Cell: One scorable option (score and description)
//   - GradeSheet: A rubric laid out for grading, with one checked option per row
//   - ViewNode: A structured view of the editable grid
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

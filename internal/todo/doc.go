// Package todo models the task list and its on-disk JSON form.
//
// The task file (todos.json) is a bare JSON array of task objects:
//
//	[
//	  {
//	    "text": "buy milk",
//	    "done": false
//	  },
//	  {
//	    "text": "water plants",
//	    "done": true
//	  }
//	]
//
// Tasks have no IDs and no timestamps; identity is positional and every
// operation addresses a task by its index in the list.
//
// # Loading
//
// Two load paths are provided:
//
// 1. Load (strict, for maintenance commands):
//   - Missing or malformed files return wrapped errors
//
// 2. LoadOrEmpty (forgiving, for the interactive session):
//   - A missing file is created on disk as an empty list
//   - Malformed content yields an empty list without modifying the file
//   - Never returns an error
//
// # Validation
//
// The package supports two validation modes:
//
// 1. JSON Schema validation (draft-2020-12):
//   - Against a schema file when one is present on disk
//   - Against the bundled schema otherwise
//
// 2. Minimal fallback validation (when no schema compiles):
//   - Every task must have non-empty text
//   - No external dependencies required
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Whole-file overwrite on every save
package todo

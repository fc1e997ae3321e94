package forge

import "fmt"

// MalformedInputError is returned when a sequence collection cannot be used:
// a residue outside the accepted alphabet, a duplicate identifier within the
// collection, or a file with no records at all.
type MalformedInputError struct {
	// Path of the offending collection file
	Path string

	// Reason the collection was rejected
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed sequence collection %s: %s", e.Path, e.Reason)
}

// MalformedTableError reports a ligand table row with fewer than three fields.
type MalformedTableError struct {
	// Path of the table file
	Path string

	// Line number of the bad row (1-indexed)
	Line int
}

func (e *MalformedTableError) Error() string {
	return fmt.Sprintf("malformed ligand row at %s:%d: fewer than three fields", e.Path, e.Line)
}

// EscapeFailure is returned when the string-escaping delegate is unavailable
// or rejects an input value.
type EscapeFailure struct {
	// Value that could not be escaped
	Value string

	Err error
}

func (e *EscapeFailure) Error() string {
	return fmt.Sprintf("failed to JSON-escape %q: %v", e.Value, e.Err)
}

func (e *EscapeFailure) Unwrap() error { return e.Err }

// PipelineStageError marks an alignment pipeline stage that exited non-zero
// or produced no output artifact. The stages that follow it never run.
type PipelineStageError struct {
	// Stage is the name of the failed stage (createdb, search, align, convertalis)
	Stage string

	Err error
}

func (e *PipelineStageError) Error() string {
	return fmt.Sprintf("alignment stage %s failed: %v", e.Stage, e.Err)
}

func (e *PipelineStageError) Unwrap() error { return e.Err }

// OutputConflictError is returned when the output directory already exists
// and no conflict resolution was chosen before the run.
type OutputConflictError struct {
	Path string
}

func (e *OutputConflictError) Error() string {
	return fmt.Sprintf("output directory %s already exists: choose replace or new", e.Path)
}

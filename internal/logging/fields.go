package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Configuration fields.
	FieldFlavor     = "flavor"
	FieldJobs       = "jobs"
	FieldStandalone = "standalone"
	FieldWatch      = "watch"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesFailed     = "files_failed"
	FieldAdmonitions     = "admonitions"
	FieldBytes           = "bytes"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Marker fields.
	FieldMarker = "marker"
	FieldTitle  = "title"
)

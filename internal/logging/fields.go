package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Buffer fields.
	FieldLine       = "line"
	FieldTotalLines = "total_lines"
	FieldLineEnding = "line_ending"
	FieldKind       = "kind"
	FieldContent    = "content"

	// Viewport fields.
	FieldStart  = "start"
	FieldEnd    = "end"
	FieldCursor = "cursor"
	FieldAction = "action"
	FieldHeight = "height"

	// Save path fields.
	FieldBackup   = "backup"
	FieldPruned   = "pruned"
	FieldReadOnly = "read_only"
	FieldConflict = "external_modification"
	FieldStrict   = "strict"

	// Preview fields.
	FieldTarget   = "target"
	FieldLanguage = "language"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

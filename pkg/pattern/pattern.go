// Package pattern classifies the lines of a .gitleaksignore file.
//
// Every line maps to exactly one of four shapes: a comment, a blank line, a
// fingerprint record, or an invalid entry. The set is closed; consumers
// switch on Kind (or type-switch on the concrete value) exhaustively.
package pattern

import "strconv"

// Kind identifies the variant of a Pattern.
type Kind int

const (
	// KindInvalid is a line that matches no other shape.
	KindInvalid Kind = iota

	// KindBlank is an empty or whitespace-only line.
	KindBlank

	// KindComment is a line whose trimmed content starts with '#'.
	KindComment

	// KindFingerprint is a structured suppression record.
	KindFingerprint
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindFingerprint:
		return "fingerprint"
	case KindInvalid:
		return "invalid"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Pattern is the classification of one line. The concrete type is one of
// Comment, BlankLine, Fingerprint or Invalid.
type Pattern interface {
	// Kind reports which variant this is.
	Kind() Kind

	sealed()
}

// Comment is a line starting with '#'.
type Comment struct{}

// BlankLine is an empty or whitespace-only line.
type BlankLine struct{}

// Invalid is a line that is neither blank, a comment, nor a fingerprint.
type Invalid struct{}

// Fingerprint identifies one gitleaks finding:
//
//	[<commit-hash>:]<file-path>:<rule-id>:<line-number>
type Fingerprint struct {
	// CommitHash is the 40-character hex commit, or empty when absent.
	CommitHash string

	// FilePath may itself contain ':' (archive members, for example).
	FilePath string

	// RuleID is the gitleaks rule identifier.
	RuleID string

	// LineNumber is the line of the finding within FilePath.
	LineNumber uint32
}

func (Comment) Kind() Kind     { return KindComment }
func (BlankLine) Kind() Kind   { return KindBlank }
func (Invalid) Kind() Kind     { return KindInvalid }
func (Fingerprint) Kind() Kind { return KindFingerprint }

func (Comment) sealed()     {}
func (BlankLine) sealed()   {}
func (Invalid) sealed()     {}
func (Fingerprint) sealed() {}

// HasCommit reports whether the fingerprint carries a commit hash.
func (f Fingerprint) HasCommit() bool {
	return f.CommitHash != ""
}

// String renders the fingerprint back into its on-disk form.
func (f Fingerprint) String() string {
	tail := f.FilePath + ":" + f.RuleID + ":" + strconv.FormatUint(uint64(f.LineNumber), 10)
	if f.HasCommit() {
		return f.CommitHash + ":" + tail
	}
	return tail
}

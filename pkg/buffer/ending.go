package buffer

import "strings"

// LineEnding is the line terminator style of a file.
type LineEnding int

const (
	// LF is the Unix terminator "\n".
	LF LineEnding = iota

	// CRLF is the Windows terminator "\r\n".
	CRLF

	// CR is the legacy Mac terminator "\r".
	CR
)

// DetectLineEnding scans the whole content and returns the first style found,
// checking "\r\n" before "\n" before "\r". Content with no terminator at all
// (an empty or single-line file) is treated as LF.
func DetectLineEnding(content string) LineEnding {
	switch {
	case strings.Contains(content, "\r\n"):
		return CRLF
	case strings.Contains(content, "\n"):
		return LF
	case strings.Contains(content, "\r"):
		return CR
	default:
		return LF
	}
}

// Terminator returns the byte sequence written after every line.
func (e LineEnding) Terminator() string {
	switch e {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	case LF:
		return "\n"
	default:
		return "\n"
	}
}

// String returns the conventional name of the style.
func (e LineEnding) String() string {
	switch e {
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	case LF:
		return "LF"
	default:
		return "LF"
	}
}

// splitLines breaks content into lines on the given style. A trailing
// terminator does not produce an extra empty line. For CRLF files a bare "\n"
// still ends a line; the "\r" before it is dropped when present.
func splitLines(content string, ending LineEnding) []string {
	if content == "" {
		return nil
	}

	sep := "\n"
	if ending == CR {
		sep = "\r"
	}

	parts := strings.Split(content, sep)
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	if ending == CRLF {
		for i, part := range parts {
			parts[i] = strings.TrimSuffix(part, "\r")
		}
	}

	return parts
}

package pattern

import (
	"strconv"
	"strings"
)

// commitHashLen is the length of a full SHA-1 commit hash in hex.
const commitHashLen = 40

// Classify returns the pattern of a single line. It is total and pure: every
// string maps to exactly one variant, and the same input always yields the
// same result.
//
// Fingerprints are scanned right to left. The file path may contain ':', so
// only the trailing line number and rule id, and the optional leading hash,
// have a fixed shape.
func Classify(content string) Pattern {
	trimmed := strings.TrimSpace(content)

	if trimmed == "" {
		return BlankLine{}
	}
	if strings.HasPrefix(trimmed, "#") {
		return Comment{}
	}

	fp, ok := parseFingerprint(trimmed)
	if !ok {
		return Invalid{}
	}
	return fp
}

func parseFingerprint(line string) (Fingerprint, bool) {
	last := strings.LastIndexByte(line, ':')
	if last < 0 {
		return Fingerprint{}, false
	}

	// One leading '+' is allowed; ParseUint rejects any other sign.
	lineNumber, err := strconv.ParseUint(strings.TrimPrefix(line[last+1:], "+"), 10, 32)
	if err != nil {
		return Fingerprint{}, false
	}

	rest := line[:last]
	secondLast := strings.LastIndexByte(rest, ':')
	if secondLast < 0 {
		return Fingerprint{}, false
	}

	ruleID := rest[secondLast+1:]
	if ruleID == "" {
		return Fingerprint{}, false
	}

	remaining := rest[:secondLast]
	fp := Fingerprint{
		FilePath:   remaining,
		RuleID:     ruleID,
		LineNumber: uint32(lineNumber),
	}

	if len(remaining) > commitHashLen && remaining[commitHashLen] == ':' && isHex(remaining[:commitHashLen]) {
		fp.CommitHash = remaining[:commitHashLen]
		fp.FilePath = remaining[commitHashLen+1:]
	}

	if fp.FilePath == "" {
		return Fingerprint{}, false
	}

	return fp, true
}

func isHex(s string) bool {
	for i := range len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

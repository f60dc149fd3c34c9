// Package langdetect names the language of a source file a fingerprint
// points at. It uses go-enry for filename, extension, shebang and classifier
// strategies and falls back to a few content patterns for snippets enry
// cannot place.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language could be determined.
const Text = "text"

const (
	langGo   = "go"
	langJSON = "json"
	langYAML = "yaml"
	langBash = "bash"
	langEnv  = "dotenv"
)

// ForFile returns the language of the file at path with the given content.
// The filename wins over content when it is unambiguous.
func ForFile(path string, content []byte) string {
	name := filepath.Base(path)

	if isDotenv(name) {
		return langEnv
	}

	if lang, safe := enry.GetLanguageByFilename(name); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByExtension(name); safe {
		return normalize(lang)
	}

	if lang := enry.GetLanguage(name, content); lang != "" {
		return normalize(lang)
	}

	return Detect(content)
}

// Detect returns the language of an anonymous snippet, or Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	candidates := []string{
		"Go", "Python", "Shell", "JavaScript", "TypeScript",
		"Ruby", "Java", "JSON", "YAML", "Dotenv",
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return langGo
	case (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)):
		return langJSON
	case countYAMLKeys(content) >= 2:
		return langYAML
	default:
		return ""
	}
}

// countYAMLKeys counts lines shaped like "key: value" or "- item", skipping
// lines that look like code.
func countYAMLKeys(content []byte) int {
	count := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
	}
	return count
}

func isDotenv(name string) bool {
	return name == ".env" || strings.HasPrefix(name, ".env.")
}

// normalize converts go-enry language names to lowercase tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}

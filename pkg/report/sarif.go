package report

import (
	"fmt"
	"io"
	"path/filepath"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

	// RuleInvalidLine is the SARIF rule id of every finding.
	RuleInvalidLine = "invalid-line"
)

// SARIFOutput is the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

type SARIFRule struct {
	ID               string      `json:"id"`
	ShortDescription SARIFText   `json:"shortDescription"`
	DefaultConfig    SARIFConfig `json:"defaultConfiguration"`
}

type SARIFText struct {
	Text string `json:"text"`
}

type SARIFConfig struct {
	Level string `json:"level"`
}

// SARIFResult is one invalid line. Its fix deletes the line.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifact `json:"artifactLocation"`
	Region           SARIFRegion   `json:"region"`
}

type SARIFArtifact struct {
	URI string `json:"uri"`
}

type SARIFRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine,omitempty"`
}

type SARIFFix struct {
	Description     SARIFText             `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifact      `json:"artifactLocation"`
	Replacements     []SARIFReplacement `json:"replacements"`
}

type SARIFReplacement struct {
	DeletedRegion SARIFRegion `json:"deletedRegion"`
}

// SARIFRenderer writes the report as SARIF 2.1.0 for code scanning uploads.
type SARIFRenderer struct {
	version string
	compact bool
}

// Render implements Renderer.
func (s *SARIFRenderer) Render(w io.Writer, r *Report) error {
	return encode(w, s.Build(r), s.compact)
}

// Build converts r into a SARIF document.
func (s *SARIFRenderer) Build(r *Report) *SARIFOutput {
	uri := filepath.ToSlash(r.Path)
	artifact := SARIFArtifact{URI: uri}

	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           "gliedit",
			Version:        s.version,
			InformationURI: "https://github.com/yaklabco/gliedit",
			Rules: []SARIFRule{{
				ID:               RuleInvalidLine,
				ShortDescription: SARIFText{Text: "Line is not a fingerprint, comment or blank line"},
				DefaultConfig:    SARIFConfig{Level: "error"},
			}},
		}},
		Results: make([]SARIFResult, 0, len(r.Invalid)),
	}

	for _, finding := range r.Invalid {
		region := SARIFRegion{StartLine: finding.Line, EndLine: finding.Line}
		run.Results = append(run.Results, SARIFResult{
			RuleID:  RuleInvalidLine,
			Level:   "error",
			Message: SARIFText{Text: fmt.Sprintf("invalid fingerprint: %q", finding.Content)},
			Locations: []SARIFLocation{{
				PhysicalLocation: SARIFPhysicalLocation{ArtifactLocation: artifact, Region: region},
			}},
			Fixes: []SARIFFix{{
				Description: SARIFText{Text: fmt.Sprintf("Delete line %d", finding.Line)},
				ArtifactChanges: []SARIFArtifactChange{{
					ArtifactLocation: artifact,
					Replacements:     []SARIFReplacement{{DeletedRegion: region}},
				}},
			}},
		})
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

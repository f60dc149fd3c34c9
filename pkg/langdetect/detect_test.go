package langdetect_test

import (
	"testing"

	"github.com/yaklabco/gliedit/pkg/langdetect"
)

func TestForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{
			name:     "go by extension",
			path:     "cmd/server/main.go",
			content:  "package main\n",
			expected: "go",
		},
		{
			name:     "python by extension",
			path:     "scripts/deploy.py",
			content:  "import os\n",
			expected: "python",
		},
		{
			name:     "dockerfile by name",
			path:     "build/Dockerfile",
			content:  "FROM alpine\n",
			expected: "dockerfile",
		},
		{
			name:     "dotenv",
			path:     ".env",
			content:  "AWS_SECRET_ACCESS_KEY=abc\n",
			expected: "dotenv",
		},
		{
			name:     "dotenv variant",
			path:     "config/.env.production",
			content:  "TOKEN=abc\n",
			expected: "dotenv",
		},
		{
			name:     "unknown name falls back to content",
			path:     "secrets",
			content:  "#!/bin/bash\nexport TOKEN=abc\n",
			expected: "bash",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := langdetect.ForFile(tt.path, []byte(tt.content))
			if got != tt.expected {
				t.Errorf("ForFile(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang bash",
			content:  "#!/bin/bash\necho hello",
			expected: "bash",
		},
		{
			name:     "shebang python",
			content:  "#!/usr/bin/env python3\nprint('hello')",
			expected: "python",
		},
		{
			name:     "go package clause",
			content:  "package config\n\nvar token = \"x\"\n",
			expected: "go",
		},
		{
			name:     "json object",
			content:  `{"api_key": "value", "number": 123}`,
			expected: "json",
		},
		{
			name:     "yaml mapping",
			content:  "database:\n  password: hunter2\n  user: admin\n",
			expected: "yaml",
		},
		{
			name:     "empty",
			content:  "",
			expected: "text",
		},
		{
			name:     "whitespace only",
			content:  " \n\t\n",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.Detect([]byte(tt.content)); got != tt.expected {
				t.Errorf("Detect() = %q, want %q", got, tt.expected)
			}
		})
	}
}

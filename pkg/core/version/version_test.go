package version

import (
	"regexp"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Platform", Platform},
		{"Grammar", Grammar},
		{"CLI", CLI},
		{"Workbench", Workbench},
		{"Explorer", Explorer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q is not valid semver", tt.name, tt.version)
			}
		})
	}
}

func TestService(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"parser", Grammar},
		{"lexer", Grammar},
		{"thing", CLI},
		{"workbench", Workbench},
		{"explorer", Explorer},
		{"unknown", Platform},
		{"", Platform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Service(tt.name); got != tt.expected {
				t.Errorf("Service(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

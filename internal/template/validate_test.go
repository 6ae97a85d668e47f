package template

import (
	"strings"
	"testing"
)

func TestValidateBundle_Valid(t *testing.T) {
	result, err := ValidateBundle([]byte(minimalBundle))
	if err != nil {
		t.Fatalf("ValidateBundle error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("valid bundle rejected: %+v", result.Issues)
	}
}

func TestValidateBundle_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		bundle   string
		wantPath string
	}{
		{
			name:     "missing version",
			bundle:   "name: demo\nfiles:\n  - path: a.txt\n    content: hi\n",
			wantPath: "",
		},
		{
			name:     "bad name pattern",
			bundle:   "name: Demo_Template\nversion: 1.0.0\nfiles:\n  - path: a.txt\n    content: hi\n",
			wantPath: "/name",
		},
		{
			name:     "bad version pattern",
			bundle:   "name: demo\nversion: v1\nfiles:\n  - path: a.txt\n    content: hi\n",
			wantPath: "/version",
		},
		{
			name:     "empty files",
			bundle:   "name: demo\nversion: 1.0.0\nfiles: []\n",
			wantPath: "/files",
		},
		{
			name:     "bad mode",
			bundle:   "name: demo\nversion: 1.0.0\nfiles:\n  - path: a.txt\n    content: hi\n    mode: \"777\"\n",
			wantPath: "/files/0/mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateBundle([]byte(tt.bundle))
			if err != nil {
				t.Fatalf("ValidateBundle error: %v", err)
			}
			if result.Valid {
				t.Fatal("invalid bundle accepted")
			}
			if len(result.Issues) == 0 {
				t.Fatal("no issues reported")
			}
			found := false
			for _, issue := range result.Issues {
				if strings.HasPrefix(issue.Path, tt.wantPath) {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at path %q, got %+v", tt.wantPath, result.Issues)
			}
		})
	}
}

func TestValidateBundle_NotYAML(t *testing.T) {
	if _, err := ValidateBundle([]byte("{{{ not yaml")); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

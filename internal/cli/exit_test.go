package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"attention", &attentionError{count: 2}, 2},
		{"wrapped attention", fmt.Errorf("scaffold: %w", &attentionError{count: 1}), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"project=foo", "region=eu-west-1", "empty="})
	if err != nil {
		t.Fatalf("parseParams error: %v", err)
	}
	if params["project"] != "foo" || params["region"] != "eu-west-1" {
		t.Errorf("params = %v", params)
	}
	if v, ok := params["empty"]; !ok || v != "" {
		t.Error("empty value not preserved")
	}

	for _, bad := range []string{"noequals", "=value"} {
		if _, err := parseParams([]string{bad}); err == nil {
			t.Errorf("parseParams(%q) accepted invalid input", bad)
		}
	}
}

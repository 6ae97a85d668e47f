package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCollected(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   int
		ok     bool
	}{
		{
			name:   "plural items",
			output: "platform linux\ncollected 12 items\n\n<Module test_app.py>\n",
			want:   12,
			ok:     true,
		},
		{
			name:   "single item",
			output: "collected 1 item\n",
			want:   1,
			ok:     true,
		},
		{
			name:   "no tests",
			output: "platform linux\nno tests ran\n",
			ok:     false,
		},
		{
			name:   "garbled count",
			output: "collected many items\n",
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseCollected(tt.output)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"\n", 0},
		{" M file.go\n", 1},
		{" M a.go\n?? b.go\n", 2},
	}
	for _, tt := range tests {
		if got := countLines(tt.in); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDocStatus(t *testing.T) {
	root := t.TempDir()
	if got := docStatus(root); got != "Documentation not set up." {
		t.Errorf("no docs dir: %q", got)
	}

	if err := os.MkdirAll(filepath.Join(root, "docs"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := docStatus(root); got != "Docs folder exists but 'conf.py' is missing." {
		t.Errorf("docs without conf.py: %q", got)
	}

	if err := os.WriteFile(filepath.Join(root, "docs", "conf.py"), []byte(""), 0644); err != nil {
		t.Fatal(err)
	}
	if got := docStatus(root); got != "Documentation is set up." {
		t.Errorf("complete docs: %q", got)
	}
}

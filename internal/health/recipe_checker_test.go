package health

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/epistep/internal/schema"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStatusString(t *testing.T) {
	for _, s := range []Status{StatusHealthy, StatusDegraded, StatusUnhealthy} {
		if s.String() != string(s) {
			t.Errorf("String() = %q, want %q", s.String(), s)
		}
	}
}

func TestSchemaChecker(t *testing.T) {
	ctx := context.Background()

	if r := NewSchemaChecker("").Check(ctx); r.Status != StatusHealthy {
		t.Errorf("built-in schema: %v %s", r.Status, r.Message)
	}

	good := writeFile(t, "schema.yaml", string(schema.DefaultYAML()))
	if r := NewSchemaChecker(good).Check(ctx); r.Status != StatusHealthy || r.Details["path"] != good {
		t.Errorf("valid schema: %v %s %v", r.Status, r.Message, r.Details)
	}

	bad := writeFile(t, "bad.yaml", "loop: {for_loop: 1, end_for_loop: 1}\n")
	r := NewSchemaChecker(bad).Check(ctx)
	if r.Status != StatusUnhealthy || r.Details["code"] != "SCHEMA-003" {
		t.Errorf("invalid schema: %v %s %v", r.Status, r.Message, r.Details)
	}

	if r := NewSchemaChecker(filepath.Join(t.TempDir(), "missing.yaml")).Check(ctx); r.Details["code"] != "SCHEMA-001" {
		t.Errorf("missing schema: %v", r.Details)
	}
}

func TestRecipeChecker(t *testing.T) {
	s := schema.Default()

	tests := []struct {
		name    string
		file    string
		content string
		want    Status
		code    string
	}{
		{
			name:    "valid",
			file:    "ok.yaml",
			content: "steps:\n  - {action: 120, task: 2}\n  - {action: 10, step_duration: 3}\n  - {action: 130}\n",
			want:    StatusHealthy,
		},
		{
			name:    "warnings only",
			file:    "garbled.csv",
			content: "action\nwait\n10\n",
			want:    StatusDegraded,
		},
		{
			name:    "unclosed loop",
			file:    "unclosed.yaml",
			content: "steps:\n  - {action: 120, task: 2}\n",
			want:    StatusUnhealthy,
		},
		{
			name:    "unparsable",
			file:    "broken.yaml",
			content: "steps: [1, 2\n",
			want:    StatusUnhealthy,
			code:    "RECIPE-002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			c := NewRecipeChecker(path, s)
			if c.Name() != path {
				t.Errorf("Name() = %q, want %q", c.Name(), path)
			}

			r := c.Check(context.Background())
			if r.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", r.Status, tt.want, r.Message)
			}
			if tt.code != "" && r.Details["code"] != tt.code {
				t.Errorf("code = %v, want %s", r.Details["code"], tt.code)
			}
		})
	}
}

func TestRecipeChecker_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRecipeChecker("never-read.yaml", schema.Default()).Check(ctx)
	if r.Status != StatusUnhealthy || r.Message != "check cancelled" {
		t.Errorf("unexpected result: %v %s", r.Status, r.Message)
	}
}

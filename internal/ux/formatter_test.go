package ux

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/epistep/internal/schedule"
	"github.com/felixgeelhaar/epistep/internal/schema"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"json", OutputJSON, false},
		{"yaml", OutputYAML, false},
		{"csv", "", true},
		{"JSON", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	_, err := NewPrinter("xml", PrinterOptions{})
	if err == nil {
		t.Fatal("NewPrinter accepted an unknown format")
	}
	if !strings.Contains(EnhanceError(err).Error(), "--output") {
		t.Errorf("unknown format should suggest --output: %v", EnhanceError(err))
	}
}

func buildSchedule(t *testing.T) *schedule.Schedule {
	t.Helper()
	sched, err := schedule.Build(loadRecipe(t, looped), schema.Default())
	if err != nil {
		t.Fatalf("build schedule: %v", err)
	}
	return sched
}

func TestPrinter_SnapshotReport(t *testing.T) {
	rep := NewSnapshotReport(loadRecipe(t, looped), schema.Default(), "anneal.yaml")

	tests := []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"text", func(t *testing.T, out string) {
			for _, want := range []string{"(anneal.yaml)", "Duration: 6s", "Status:   valid", "[0..2] depth 1  x3"} {
				if !strings.Contains(out, want) {
					t.Errorf("text output missing %q:\n%s", want, out)
				}
			}
		}},
		{"json", func(t *testing.T, out string) {
			var back SnapshotReport
			if err := json.Unmarshal([]byte(out), &back); err != nil {
				t.Fatalf("not json: %v\n%s", err, out)
			}
			if back.TotalSeconds != 6 || !back.Valid || len(back.Loops) != 1 {
				t.Errorf("json lost fields: %+v", back)
			}
		}},
		{"yaml", func(t *testing.T, out string) {
			var back SnapshotReport
			if err := yaml.Unmarshal([]byte(out), &back); err != nil {
				t.Fatalf("not yaml: %v\n%s", err, out)
			}
			if back.Source != "anneal.yaml" || len(back.Timeline) != 3 {
				t.Errorf("yaml lost fields: %+v", back)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := NewPrinter(tt.format, PrinterOptions{Writer: &buf, NoColor: true})
			if err != nil {
				t.Fatalf("NewPrinter() error = %v", err)
			}
			if err := p.Print(rep); err != nil {
				t.Fatalf("Print() error = %v", err)
			}
			tt.check(t, buf.String())
		})
	}
}

func TestPrinter_ScheduleView(t *testing.T) {
	sched := buildSchedule(t)

	var text bytes.Buffer
	p, err := NewPrinter("text", PrinterOptions{Writer: &text, NoColor: true})
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	if err := p.Print(NewScheduleView(sched)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	out := text.String()
	for _, want := range []string{"Steps:    3", "Duration: 6s", "ForLoop  x3", "Wait  for 2s", "EndForLoop"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}

	var compact bytes.Buffer
	p, err = NewPrinter("json", PrinterOptions{Writer: &compact, Compact: true})
	if err != nil {
		t.Fatalf("NewPrinter() error = %v", err)
	}
	if err := p.Print(NewScheduleView(sched)); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if strings.Count(compact.String(), "\n") != 1 {
		t.Errorf("compact json spans lines: %s", compact.String())
	}

	var back schedule.Schedule
	if err := json.Unmarshal(compact.Bytes(), &back); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if back.RecipeID != sched.RecipeID || len(back.Steps) != len(sched.Steps) {
		t.Errorf("view changed the schedule encoding: %+v", back)
	}
	if err := back.Validate(); err != nil {
		t.Errorf("printed schedule does not validate: %v", err)
	}
}

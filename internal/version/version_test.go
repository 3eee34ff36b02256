package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() {
		Version, Commit, Date = origVersion, origCommit, origDate
	})
}

func TestGetInfo(t *testing.T) {
	stamp(t, "1.4.0", "9f8e7d6c5b4a", "2026-03-02T08:00:00Z")

	info := GetInfo()
	if info.Version != "1.4.0" || info.Commit != "9f8e7d6c5b4a" || info.Date != "2026-03-02T08:00:00Z" {
		t.Errorf("ldflags not reported: %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %s, want %s", info.GoVersion, runtime.Version())
	}
	if info.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %s", info.Platform)
	}
}

func TestGetInfo_Engine(t *testing.T) {
	engine := GetInfo().Engine

	if engine.MaxLoopDepth != 3 {
		t.Errorf("MaxLoopDepth = %d, want 3", engine.MaxLoopDepth)
	}
	if engine.DefaultForLoop != 120 || engine.DefaultEndForLoop != 130 {
		t.Errorf("default loop actions = %d/%d, want 120/130", engine.DefaultForLoop, engine.DefaultEndForLoop)
	}
	if strings.Join(engine.RecipeFormats, ",") != "yaml,csv" {
		t.Errorf("RecipeFormats = %v", engine.RecipeFormats)
	}
}

func TestInfo_IsRelease(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"stamped", Info{Version: "1.4.0", Commit: "9f8e7d6c"}, true},
		{"dev build", Info{Version: "dev", Commit: "unknown"}, false},
		{"version without commit", Info{Version: "1.4.0", Commit: "unknown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.IsRelease(); got != tt.want {
				t.Errorf("IsRelease() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInfo_String(t *testing.T) {
	stamp(t, "1.4.0", "9f8e7d6c5b4a", "2026-03-02")

	got := GetInfo().String()
	for _, want := range []string{
		"epistep 1.4.0\n",
		"commit:  9f8e7d6c\n",
		"built:   2026-03-02 with " + runtime.Version(),
		"loops:   120/130 by default, max depth 3",
		"recipes: yaml, csv",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "9f8e7d6c5b4a") {
		t.Errorf("String() should shorten the commit:\n%s", got)
	}
}

func TestInfo_JSON(t *testing.T) {
	data, err := json.Marshal(GetInfo())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Version string `json:"version"`
		Engine  struct {
			MaxLoopDepth  int      `json:"max_loop_depth"`
			RecipeFormats []string `json:"recipe_formats"`
		} `json:"engine"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Version == "" || decoded.Engine.MaxLoopDepth != 3 || len(decoded.Engine.RecipeFormats) != 2 {
		t.Errorf("unexpected JSON: %s", data)
	}
}

// Package version reports build metadata and the analysis rules compiled
// into the binary. Schedules and bug reports quote it so a timeline can be
// traced to the loop rules that produced it.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/felixgeelhaar/epistep/internal/analysis"
	"github.com/felixgeelhaar/epistep/internal/recipe"
)

// Set by ldflags during release builds.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the build identity of one epistep binary
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Engine    Engine `json:"engine"`
}

// Engine holds the analysis constants a build was compiled with
type Engine struct {
	MaxLoopDepth      int      `json:"max_loop_depth"`
	DefaultForLoop    int16    `json:"default_for_loop"`
	DefaultEndForLoop int16    `json:"default_end_for_loop"`
	RecipeFormats     []string `json:"recipe_formats"`
}

// GetInfo returns the identity of the running binary
func GetInfo() Info {
	formats := make([]string, 0, len(recipe.Formats))
	for _, f := range recipe.Formats {
		formats = append(formats, string(f))
	}
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Engine: Engine{
			MaxLoopDepth:      analysis.MaxDepth,
			DefaultForLoop:    analysis.DefaultLoopActions.ForLoop,
			DefaultEndForLoop: analysis.DefaultLoopActions.EndForLoop,
			RecipeFormats:     formats,
		},
	}
}

// IsRelease reports whether the binary was stamped by a release build
func (i Info) IsRelease() bool {
	return i.Version != "dev" && i.Commit != "unknown"
}

// ShortCommit is the first eight characters of the commit
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// Short returns just the version number
func (i Info) Short() string {
	return i.Version
}

// String lays the identity out for `epistep version --verbose`
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "epistep %s\n", i.Version)
	fmt.Fprintf(&b, "  commit:  %s\n", i.ShortCommit())
	fmt.Fprintf(&b, "  built:   %s with %s for %s\n", i.Date, i.GoVersion, i.Platform)
	fmt.Fprintf(&b, "  loops:   %d/%d by default, max depth %d\n",
		i.Engine.DefaultForLoop, i.Engine.DefaultEndForLoop, i.Engine.MaxLoopDepth)
	fmt.Fprintf(&b, "  recipes: %s", strings.Join(i.Engine.RecipeFormats, ", "))
	return b.String()
}

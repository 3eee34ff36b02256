package ux

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDirName is the per-project configuration directory
const DefaultDirName = ".epistep"

// PathDefaults provides defaults for the files epistep reads and writes
type PathDefaults struct {
	Dir string
}

// NewPathDefaults creates a new PathDefaults rooted at .epistep in the working directory
func NewPathDefaults() *PathDefaults {
	return &PathDefaults{
		Dir: DefaultDirName,
	}
}

// SchemaFile returns the default path to schema.yaml
func (pd *PathDefaults) SchemaFile() string {
	return filepath.Join(pd.Dir, "schema.yaml")
}

// RecipesDir returns the default recipe directory
func (pd *PathDefaults) RecipesDir() string {
	return filepath.Join(pd.Dir, "recipes")
}

// ResolveSchemaFile picks the schema to load. An explicit flag always wins;
// otherwise the project schema is used when present. ok is false when the
// built-in schema should be used.
func (pd *PathDefaults) ResolveSchemaFile(flag string) (path string, ok bool) {
	if flag != "" {
		return flag, true
	}
	if _, err := os.Stat(pd.SchemaFile()); err == nil {
		return pd.SchemaFile(), true
	}
	return "", false
}

// ScheduleFile returns the default export path next to the recipe
func ScheduleFile(recipePath string) string {
	ext := filepath.Ext(recipePath)
	return strings.TrimSuffix(recipePath, ext) + ".schedule.json"
}

// IsRecipeFile reports whether path has a recipe extension
func IsRecipeFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".csv":
		return filepath.Base(path) != "schema.yaml"
	}
	return false
}

// FindRecipes lists recipe files in dirs, sorted and without duplicates.
// Missing directories are skipped.
func FindRecipes(dirs ...string) ([]string, error) {
	seen := make(map[string]bool)
	var found []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", dir, err)
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if e.IsDir() || !IsRecipeFile(path) || seen[path] {
				continue
			}
			seen[path] = true
			found = append(found, path)
		}
	}
	sort.Strings(found)
	return found, nil
}

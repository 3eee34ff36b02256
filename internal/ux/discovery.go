package ux

import (
	"os"
	"path/filepath"
)

// DiscoverDir searches the working directory and its parents for .epistep,
// stopping at the repository root. It returns "" when none exists.
func DiscoverDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return discoverFrom(cwd), nil
}

func discoverFrom(dir string) string {
	for {
		candidate := filepath.Join(dir, DefaultDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// DiscoverPathDefaults returns PathDefaults for the nearest .epistep directory,
// falling back to .epistep in the working directory.
func DiscoverPathDefaults() *PathDefaults {
	pd := NewPathDefaults()
	if dir, err := DiscoverDir(); err == nil && dir != "" {
		pd.Dir = dir
	}
	return pd
}

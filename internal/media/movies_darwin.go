//go:build darwin
// +build darwin

package media

import (
	"os"
	"path/filepath"
)

// MoviesDirs returns ~/Movies
func MoviesDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, "Movies")}
}

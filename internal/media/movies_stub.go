//go:build !linux && !darwin && !windows
// +build !linux,!darwin,!windows

package media

// MoviesDirs reports no movies directory on unsupported platforms
func MoviesDirs() []string {
	return nil
}

//go:build !windows

package platform

// KnownFolder is only meaningful on Windows.
func KnownFolder(Folder) (string, bool) {
	return "", false
}

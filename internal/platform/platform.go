// Package platform holds operating system specific lookups used during
// configuration discovery.
package platform

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Redox   = "redox"
)

// Folder identifies a per-user directory known to the operating system.
type Folder int

const (
	// RoamingAppData is the directory normally exposed as %APPDATA%.
	RoamingAppData Folder = iota + 1
	// LocalAppData is the directory normally exposed as %LOCALAPPDATA%.
	LocalAppData
)

// UsesXDGDirs reports whether goos follows the XDG base directory layout for
// system-wide configuration (XDG_CONFIG_DIRS, /etc/xdg).
func UsesXDGDirs(goos string) bool {
	return goos != Windows && goos != "plan9" && goos != "js" && goos != "wasip1"
}

// CaseInsensitivePaths reports whether the default filesystem on goos
// compares names case-insensitively.
func CaseInsensitivePaths(goos string) bool {
	return goos == Windows || goos == Darwin
}

//go:build windows

package platform

import (
	"golang.org/x/sys/windows"
)

// KnownFolder returns the path of folder as reported by the shell.
func KnownFolder(folder Folder) (string, bool) {
	var id *windows.KNOWNFOLDERID
	switch folder {
	case RoamingAppData:
		id = windows.FOLDERID_RoamingAppData
	case LocalAppData:
		id = windows.FOLDERID_LocalAppData
	default:
		return "", false
	}
	path, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT)
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}

// Package discovery enumerates candidate configuration files and picks the
// first one that loads.
//
// Candidates are produced in a fixed order: required explicit paths, optional
// explicit paths, the path named by the override environment variable, the
// platform configuration directories (XDG, APPDATA/LOCALAPPDATA, home) and
// finally the project roots. Every directory is probed for each compiled-in
// file format, and duplicates are dropped keeping the first position.
//
// DiscoverFirst walks the candidates and partitions the failures it meets into
// required and optional errors so callers can decide what to surface.
package discovery

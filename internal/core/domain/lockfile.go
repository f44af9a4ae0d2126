package domain

// DefaultLockfilePath is the lockfile analyzed when no path is given.
const DefaultLockfilePath = "Cargo.lock"

// Lockfile is the parsed content of a resolved dependency lockfile.
type Lockfile struct {
	// Version is the lockfile format version, 0 when the file does not declare one.
	Version int

	// Packages holds every package entry in file order.
	Packages []PackageRecord
}

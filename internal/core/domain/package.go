package domain

// KeySeparator joins a package name and version into a graph key.
const KeySeparator = " "

// PackageRecord is a single resolved entry read from a lockfile.
type PackageRecord struct {
	// Name is the package name (e.g., "serde").
	Name string

	// Version is the resolved version string (e.g., "1.0.193").
	Version string

	// Dependencies lists the keys ("name version") of the packages this entry depends on.
	// Keys are resolved against the graph index and may point at packages that are not present.
	Dependencies []string
}

// Key returns the graph key for the record.
func (p PackageRecord) Key() string {
	return PackageKey(p.Name, p.Version)
}

// PackageKey builds the graph key for a name and version.
func PackageKey(name, version string) string {
	return name + KeySeparator + version
}

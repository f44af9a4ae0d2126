package domain

import packageurl "github.com/package-url/packageurl-go"

// CargoPURL returns the package URL of a crate, e.g. "pkg:cargo/serde@1.0.193".
// An empty version yields a versionless package URL.
func CargoPURL(name, version string) string {
	return packageurl.NewPackageURL(packageurl.TypeCargo, "", name, version, nil, "").ToString()
}

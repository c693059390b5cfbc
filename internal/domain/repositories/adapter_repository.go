package repositories

// AdapterRepository is a dependency ecosystem (Go modules, Terraform, ...)
// able to both update and inspect the files it supports.
type AdapterRepository interface {
	UpdaterRepository
	InspectorRepository

	// Name returns the adapter identifier (e.g. "golang", "terraform").
	Name() string

	// Supports reports whether the adapter handles the file at path.
	Supports(path string) bool
}

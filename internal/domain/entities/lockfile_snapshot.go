package entities

// LockfileSnapshot is the opaque state an updater hands to an inspector.
type LockfileSnapshot struct {
	Path    string // relative to the working copy root
	Content []byte
}

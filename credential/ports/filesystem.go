package ports

// FileChecker reports whether a file exists.
type FileChecker interface {
	Exists(path string) bool
}

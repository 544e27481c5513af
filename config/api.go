package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Only the health probe is public; the sync surface requires auth.
	return []string{"/healthz"}
}

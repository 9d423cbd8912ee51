//go:build android

package frameworks

// SNAPSupported reports whether the SNAP framework can run in this build.
func SNAPSupported() bool { return true }

//go:build !android

package frameworks

// SNAPSupported reports whether the SNAP framework can run in this build.
// SNAP is only shipped for Android (arm64-v8a).
func SNAPSupported() bool { return false }

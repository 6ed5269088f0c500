// Package exitcode provides the process exit codes of pagesmith
package exitcode

const (
	Success           = 0
	GeneralError      = 1
	ConfigError       = 2
	ValidationError   = 3
	FileSystemError   = 4
	UnsupportedFormat = 8
)

// String returns a human-readable description of the exit code
func String(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case ConfigError:
		return "Configuration error"
	case ValidationError:
		return "Validation error"
	case FileSystemError:
		return "File system error"
	case UnsupportedFormat:
		return "Unsupported format"
	default:
		return "Unknown error"
	}
}

package messages

// System messages for internal operations.
const (
	// PlatformUnsupportedOSFmt formats an unrecognized operating system.
	PlatformUnsupportedOSFmt = "unsupported operating system %s"
	// PlatformUnsupportedArchFmt formats an unrecognized OS/arch pair.
	PlatformUnsupportedArchFmt = "unsupported architecture %s/%s"

	// VersionInvalidFmt formats a version string that does not parse.
	VersionInvalidFmt = "invalid version %q: %w"

	// EnvfileLineErrorFmt formats envfile line errors.
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileOpenFailedFmt           = "open env file %s: %w"
	EnvfileReadFailedFmt           = "failed to read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "invalid trailing characters after quoted value"

	// LaunchResolveExecutableFmt formats an executable path that could not
	// be resolved before launch.
	LaunchResolveExecutableFmt = "resolve executable %s: %w"
	LaunchStartFmt             = "start %s: %w"
)

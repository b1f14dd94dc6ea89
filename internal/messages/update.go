package messages

// Self-update messages.
const (
	// UpdateCreateRequestErrFmt formats request creation errors.
	UpdateCreateRequestErrFmt      = "create update check request: %w"
	UpdateFetchFeedErrFmt          = "fetch update feed: %w"
	UpdateFetchFeedStatusFmt       = "fetch update feed: unexpected status %s"
	UpdateDecodeFeedErrFmt         = "decode update feed: %w"
	UpdateFeedMissingVersion       = "update feed missing version"
	UpdateInvalidFeedVersionFmt    = "invalid update feed version %q: %w"
	UpdateInvalidCurrentVersionFmt = "invalid current version %q: %w"

	// InitWarnUpdateCheckFailedFmt formats a best-effort check failure.
	InitWarnUpdateCheckFailedFmt = "Warning: update check failed: %v\n"
	InitWarnDevBuildFmt          = "Running a dev build; latest release is %s.\n"
	InitWarnUpdateAvailableFmt   = "A new installer version %s is available (you have %s). Run `lsi self-update`.\n"
)

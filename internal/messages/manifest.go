package messages

// Manifest fetch and decode messages.
const (
	// ManifestCreateRequestFmt formats request creation errors.
	ManifestCreateRequestFmt = "create manifest request: %w"
	ManifestFetchFailedFmt   = "fetch manifest: %w"
	ManifestFetchStatusFmt   = "fetch manifest: unexpected status %s"
	ManifestDecodeFailedFmt  = "decode manifest: %w"

	// ManifestProductMissingID indicates a product entry without an id.
	ManifestProductMissingID    = "manifest product missing id"
	ManifestDuplicateProductFmt = "duplicate product id %s"
	ManifestInvalidRangeFmt     = "invalid version range %s: %w"

	// ManifestUnknownStrategyFmt formats a strategy tag the decoder does
	// not recognize.
	ManifestUnknownStrategyFmt   = "unknown download strategy %q"
	ManifestInvalidStrategyFmt   = "invalid download strategy: %w"
	ManifestStrategyNotSingleKey = "strategy object must have exactly one key"
)

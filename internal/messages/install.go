package messages

// Install, download, and state-store messages.
const (
	// InstallerProductNotFound indicates an id the manifest does not list.
	InstallerProductNotFound = "product not found"
	// InstallerNoArtifact indicates no download matches this platform.
	InstallerNoArtifact = "no download available for this platform"
	// InstallerNoManifest indicates an operation that needs a loaded manifest.
	InstallerNoManifest = "no manifest loaded"
	// InstallerNotStartable indicates a product with no recorded executable.
	InstallerNotStartable = "product has no main executable"

	InstallerStoreRequired      = "state store is required"
	InstallerDownloaderRequired = "downloader is required"
	InstallerPlatformRequired   = "platform is required"

	InstallerCreateDirFmt          = "failed to create directory %s: %w"
	InstallerTempDirFmt            = "create temp dir: %w"
	InstallerBadRecordedVersionFmt = "invalid installed version %q: %w"
	InstallerExtractFmt            = "extract artifact: %w"
	InstallerUnknownStrategyFmt    = "unknown download strategy %q"
	InstallerFileNameRequired      = "file strategy requires a target name"
	InstallerCopyFileFmt           = "write %s: %w"
	InstallerChmodFmt              = "chmod %s: %w"
	InstallerMsiFailedFmt          = "msiexec failed: %w: %s"
	InstallerMsiUnsupported        = "msi packages are only supported on windows"

	// ArchiveUnsafePath indicates an entry that would escape the
	// destination directory.
	ArchiveUnsafePath = "archive entry escapes destination"
	ArchiveOpenFmt    = "open archive: %w"
	ArchiveCorruptFmt = "read archive: %w"
	ArchiveWriteFmt   = "extract %s: %w"

	// DownloadCreateFileFmt formats destination file creation errors.
	DownloadCreateFileFmt   = "create file %q: %w"
	DownloadCreateRequestFmt = "create download request: %w"
	DownloadFailedFmt       = "download %s: %w"
	DownloadStatusFmt       = "download %s: unexpected status %s"
	DownloadTooLargeFmt     = "download %s: artifact exceeds %d bytes"

	// StateCorrupt indicates an install state file that failed to parse.
	StateCorrupt = "install state is corrupt"
	StateReadFmt  = "read install state %s: %w"
	StateWriteFmt = "write install state %s: %w"
)

package ports

// Workspace is the host view of the vault being edited
type Workspace interface {
	// ActiveFilePath returns the vault-relative path of the active file, if any
	ActiveFilePath() (string, bool)

	// StorageBasePath returns the storage root. It may carry a URL-like
	// prefix and query suffix, see domain.NormalizeBasePath.
	StorageBasePath() string
}

// VaultBrowser lists files a user can pick from
type VaultBrowser interface {
	// ListFiles returns vault-relative paths of the editable files
	ListFiles() ([]string, error)
}

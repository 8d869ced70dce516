package config

const (
	// MaxFolderNameLength is the maximum length of one path segment.
	// Limited to 255 to fit common VARCHAR(255) columns in the document store.
	MaxFolderNameLength = 255

	// MaxFolderPathLength is the maximum length of a full folder path.
	// Set to 500 to allow paths like "A/B/C/D/E" where each segment can be
	// up to 100 characters. Longer paths indicate overly deep hierarchies.
	MaxFolderPathLength = 500

	// MaxFolderDepth is the maximum number of segments in a folder path
	// created or renamed through the session.
	MaxFolderDepth = 32
)

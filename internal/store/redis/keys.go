package redis

import "fmt"

const (
	// KeyPrefixFolder is the prefix for folder snapshot keys
	KeyPrefixFolder = "bookmirror:folder:"
	// KeyAllFolders is the key for the set of all snapshotted folder IDs
	KeyAllFolders = "bookmirror:folders:all"
	// KeyBuiltin is the key for the built-in folder layout
	KeyBuiltin = "bookmirror:builtin"
	// KeyVisits is the key for the visit-time snapshot
	KeyVisits = "bookmirror:visits"
)

// FolderKey returns the Redis key for a folder snapshot by ID
func FolderKey(id string) string {
	return KeyPrefixFolder + id
}

// AllFoldersKey returns the key for the set of all folder IDs
func AllFoldersKey() string {
	return KeyAllFolders
}

// ExtractFolderID extracts the folder ID from a Redis key
func ExtractFolderID(key string) (string, error) {
	if len(key) <= len(KeyPrefixFolder) {
		return "", fmt.Errorf("invalid folder key: %s", key)
	}
	return key[len(KeyPrefixFolder):], nil
}

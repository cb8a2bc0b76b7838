package constants

import (
	"path/filepath"
	"strings"
)

// ContentTypeFromExt picks the download Content-Type for a stored artifact.
func ContentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

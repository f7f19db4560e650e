package storage

import (
	"fmt"
	"strings"
	"time"
)

// BucketStats summarizes a listing.
type BucketStats struct {
	TotalObjects int64
	TotalSize    int64
	Songs        int64
	Panics       int64
	LastModified time.Time
}

// Summarize counts objects by kind.
func Summarize(objects []ObjectInfo) BucketStats {
	var stats BucketStats
	for _, obj := range objects {
		stats.TotalObjects++
		stats.TotalSize += obj.Size
		switch {
		case strings.HasPrefix(obj.Name, string(KindSong)+"_"):
			stats.Songs++
		case strings.HasPrefix(obj.Name, string(KindPanic)+"_"):
			stats.Panics++
		}
		if obj.LastModified.After(stats.LastModified) {
			stats.LastModified = obj.LastModified
		}
	}
	return stats
}

// FormatSize renders a byte count with a binary unit.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

package domain

import (
	"fmt"
	"math"
)

const (
	kibibyte = 1024
	mebibyte = 1024 * 1024
)

// FormatSize renders a raw byte count for display.
// Zero or negative counts render as "". Below 1 MiB the value is rounded up
// to whole kilobytes; from 1 MiB upward it is shown in megabytes with one
// decimal place.
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	if bytes < mebibyte {
		return fmt.Sprintf("%d KB", int64(math.Ceil(float64(bytes)/kibibyte)))
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/mebibyte)
}

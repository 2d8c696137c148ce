package units

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	KB = 1 << 10
	MB = KB << 10
	GB = MB << 10
	TB = GB << 10
)

var suffixes = []struct {
	name string
	mult uint64
}{
	{"TB", TB},
	{"GB", GB},
	{"MB", MB},
	{"KB", KB},
	{"B", 1},
}

// Parse converts a size string like "10MB" or "1.5GB" to bytes.
// Units are 1024-based; a bare number is taken as bytes.
func Parse(s string) (uint64, error) {
	str := strings.ToUpper(strings.TrimSpace(s))
	if str == "" {
		return 0, fmt.Errorf("empty size")
	}

	mult := uint64(1)
	num := str
	for _, suffix := range suffixes {
		if strings.HasSuffix(str, suffix.name) {
			mult = suffix.mult
			num = strings.TrimSpace(strings.TrimSuffix(str, suffix.name))
			break
		}
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	return uint64(value * float64(mult)), nil
}

// Format converts a byte count to a human-readable string.
func Format(bytes uint64) string {
	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

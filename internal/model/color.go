package model

import (
	"fmt"
	"strings"
)

// GenerateColor derives a stable display color from a name. Same name, same
// color, across sessions and imports: the color is a pure function of the name
// (djb2-style 32-bit string hash folded to a #RRGGBB value).
func GenerateColor(name string) string {
	var hash int32
	for _, r := range name {
		hash = int32(r) + (hash << 5) - hash
	}
	hex := fmt.Sprintf("%X", uint32(hash)&0x00FFFFFF)
	return "#" + strings.Repeat("0", 6-len(hex)) + hex
}

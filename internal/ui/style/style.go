// Package style holds the colors, icons and text styles shared by the logger
// and the command renderers.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/parcel/internal/core/domain"
)

// Brand Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Sky    = lipgloss.Color("#0EA5E9")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Tilde   = "~"
	Dot     = "●"
	Circle  = "○"
	Arrow   = "→"
)

// OriginIcon returns the marker shown next to a bundle in listings.
// Filled markers are locally available.
func OriginIcon(o domain.Origin) string {
	switch o {
	case domain.OriginRequireDownload:
		return Circle
	case domain.OriginLocalPassthrough:
		return Tilde
	default:
		return Dot
	}
}

// OriginColor returns the color associated with an origin.
func OriginColor(o domain.Origin) lipgloss.Color {
	switch o {
	case domain.OriginCached:
		return Green
	case domain.OriginEmbedded:
		return Sky
	case domain.OriginLocalPassthrough:
		return Yellow
	default:
		return Slate
	}
}

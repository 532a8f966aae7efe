package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphlens/pkg/explore"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, selection
	colorBlue   = lipgloss.Color("75")  // Light blue - trace paths
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Shared Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Render-State Styles
// =============================================================================

// stateStyles maps each render state to its terminal style. The mapping
// mirrors the state priority: the selected node stands out most, trace
// members next, neighbors of the selection after that, and everything
// outside the interaction context recedes.
var stateStyles = map[explore.State]lipgloss.Style{
	explore.StateSelected:  lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
	explore.StatePath:      lipgloss.NewStyle().Foreground(colorBlue),
	explore.StateConnected: lipgloss.NewStyle().Foreground(colorGreen),
	explore.StateDimmed:    lipgloss.NewStyle().Foreground(colorDim),
	explore.StateDefault:   lipgloss.NewStyle().Foreground(colorWhite),
}

// styleForState returns the style for a render state.
func styleForState(s explore.State) lipgloss.Style {
	if st, ok := stateStyles[s]; ok {
		return st
	}
	return stateStyles[explore.StateDefault]
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconCursor     = "▸ "
	iconEntrypoint = "◆ "
	iconNode       = "· "
)

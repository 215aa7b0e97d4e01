// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	TickerLines             = 1
	MainTitleLines          = 2
	SidebarTitleLines       = 3
	SidebarRightBorderWidth = 1
	BadgeWidth              = 11

	ItemRightPadding  = 1
	ItemSafetyPadding = 1

	// LoadMoreThreshold is how close to the end the cursor must be to fetch more.
	LoadMoreThreshold = 1
)

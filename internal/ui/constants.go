package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// MinTerminalWidth and MinTerminalHeight bound layout calculations
	MinTerminalWidth  = 40
	MinTerminalHeight = 10

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Chat row layout
const (
	// GutterWidth is the cursor column on the left of every row
	GutterWidth = 2

	// AvatarWidth is the column reserved for avatars in group chats
	AvatarWidth = 4

	// BubbleMaxRatio is the denominator of the widest bubble (3/4 of the row)
	BubbleMaxRatio = 4

	// BubbleChrome is the width a bubble's border and padding add to its text
	BubbleChrome = 4
)

// Package ui provides the user interface components for the parley TUI.
//
// # Overview
//
// The ui package renders an open chat using the Bubble Tea framework and
// Lipgloss styling. Components follow the Model-Update-View pattern but do
// not own chat state: the app feeds them a built sections.List and reacts to
// the messages they emit (ToggleRevealMsg, LoadOlderMsg, CopiedMsg).
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────────────────────────────────────────────┤
//	│                                                     │
//	│   Chat view                                         │
//	│                                                     │
//	├─────────────────────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
// All size calculations should go through ViewContext to ensure consistency.
//
// Header: Displays the application title and the open chat's name and
// status on a gradient background.
//
// Footer: Shows context-aware keyboard shortcuts, an unseen message count
// while scrolled up, and transient flash messages.
//
// ChatView: One row per visible item or collapsed run, with a cursor
// gutter. Section boundaries are drawn as a dotted rule. Message bubbles
// close with a tail on the last item of a same-sender block.
//
// # Styles
//
// Styles are rebuilt from the current Theme by SetTheme. Colors are exposed
// as package variables (ColorPrimary, ColorSent, ColorReceived, ...).
package ui

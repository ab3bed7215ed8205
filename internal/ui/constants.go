package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// BrowserWidthRatio is the denominator for browser width (1/3 of total width)
	BrowserWidthRatio = 3

	// TextareaMinHeight is the starting number of lines for the compose textarea
	TextareaMinHeight = 1

	// TextareaMaxHeight is the height the compose textarea grows to before
	// scrolling internally
	TextareaMaxHeight = 6

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth is the smallest width layout math will accept
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height layout math will accept
	MinTerminalHeight = 10

	// PreviewContextMessages is how many preceding messages the browser
	// drill-down shows around the preview cursor
	PreviewContextMessages = 2

	// PreviewContextLimit is the character cap for truncated context messages
	// in the drill-down view
	PreviewContextLimit = 200
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

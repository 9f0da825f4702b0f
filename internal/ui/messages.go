package ui

// reportPagerMsg contains the result of a report pager command
type reportPagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

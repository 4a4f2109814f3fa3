package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenGenerating Screen = iota
	ScreenReview
	ScreenCommitting
	ScreenComplete
	ScreenCancelled
	ScreenError
)

func (s Screen) String() string {
	names := []string{
		"Generating",
		"Review",
		"Committing",
		"Complete",
		"Cancelled",
		"Error",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsFinal reports whether the program exits after rendering this screen
func (s Screen) IsFinal() bool {
	return s == ScreenComplete || s == ScreenCancelled || s == ScreenError
}

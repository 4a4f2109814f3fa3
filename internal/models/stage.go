package models

// Stage is a state of the generation pipeline
type Stage int

const (
	StageCollectingChanges Stage = iota
	StageSummarizing
	StageDrafting
	StageValidating
	StageCommitting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	names := []string{
		"CollectingChanges",
		"Summarizing",
		"Drafting",
		"Validating",
		"Committing",
		"Done",
		"Failed",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// Display returns a short progress label for this stage
func (s Stage) Display() string {
	switch s {
	case StageCollectingChanges:
		return "Collecting changes..."
	case StageSummarizing:
		return "Summarizing diff..."
	case StageDrafting:
		return "Drafting commit message..."
	case StageValidating:
		return "Validating message..."
	case StageCommitting:
		return "Committing..."
	case StageDone:
		return "Done"
	case StageFailed:
		return "Failed"
	default:
		return ""
	}
}

// IsTerminal reports whether no further transition follows this stage
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

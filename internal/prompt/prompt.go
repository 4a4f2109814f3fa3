package prompt

import (
	"fmt"
	"strings"

	"github.com/rahul0x24/ai-gcm/internal/commitmsg"
)

// TruncationMarker is appended to a diff that was cut to fit the size limit
const TruncationMarker = "[diff truncated]"

// Summary builds the stage 1 prompt asking for a plain summary of diff
func Summary(diff string) string {
	var b strings.Builder

	b.WriteString("Analyze this git diff and provide a concise summary of the changes:\n\n")
	b.WriteString(diff)
	b.WriteString("\n\nProvide a clear and specific summary of what changed. Focus on the important details.")

	return b.String()
}

// CommitMessage builds the stage 2 prompt turning summary into a commit subject line.
// A non-empty feedback is appended so a retry can correct the previous attempt.
func CommitMessage(summary, feedback string) string {
	var b strings.Builder

	b.WriteString("Based on this summary of code changes, generate a commit message following conventional commit format.\n\n")
	b.WriteString("Summary of changes:\n")
	b.WriteString(summary)
	b.WriteString("\n\nRequirements for the commit message:\n")
	b.WriteString("- Start with a verb in the present tense\n")
	b.WriteString("- Be clear and specific\n")
	fmt.Fprintf(&b, "- Be at most %d characters long\n", commitmsg.MaxLength)
	b.WriteString("- Only include essential information\n")
	b.WriteString("- Follow conventional commit format: <type>: <description>, without a scope\n\n")
	b.WriteString("Allowed commit types:\n")
	for _, t := range commitmsg.Types {
		fmt.Fprintf(&b, "- %s: %s\n", t, typeDescriptions[t])
	}
	b.WriteString("\nRespond with JSON of the form {\"message\": \"<type>: <description>\"}.")

	if strings.TrimSpace(feedback) != "" {
		b.WriteString("\n\n")
		b.WriteString(feedback)
	}

	return b.String()
}

// Feedback describes a rejected candidate for the next drafting attempt
func Feedback(candidate string, reason error) string {
	return fmt.Sprintf("Your previous answer %q was rejected: %v. Return a corrected message.", candidate, reason)
}

var typeDescriptions = map[string]string{
	"feat":     "A new feature",
	"fix":      "A bug fix",
	"refactor": "Code restructuring",
	"docs":     "Documentation changes",
	"style":    "Formatting changes",
	"test":     "Adding or updating tests",
	"chore":    "Maintenance tasks",
}

// TruncateDiff cuts diff to at most maxBytes, on a line boundary, and marks the cut.
// maxBytes <= 0 disables truncation.
func TruncateDiff(diff string, maxBytes int) string {
	if maxBytes <= 0 || len(diff) <= maxBytes {
		return diff
	}

	cut := diff[:maxBytes]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i]
	}
	return cut + "\n" + TruncationMarker
}

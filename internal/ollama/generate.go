package ollama

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rahul0x24/ai-gcm/internal/commitmsg"
	"github.com/rahul0x24/ai-gcm/internal/prompt"

	"github.com/cockroachdb/errors"
)

// messageSchema constrains the drafting reply to {"message": string}
var messageSchema = json.RawMessage(`{"type":"object","properties":{"message":{"type":"string","description":"A conventional commit message starting with type (feat, fix, etc.) followed by a description","minLength":1,"maxLength":72}},"required":["message"]}`)

// draftReply is the structured answer of the drafting stage
type draftReply struct {
	Message *string `json:"message"`
}

// Summarize asks model for a plain-language summary of diff
func (c *Client) Summarize(ctx context.Context, diff, model string) (string, error) {
	text, err := c.Generate(ctx, GenerateRequest{
		Model:  model,
		Prompt: prompt.Summary(diff),
	})
	if err != nil {
		return "", err
	}

	summary := strings.TrimSpace(text)
	if summary == "" {
		return "", invalidResponse("empty summary")
	}
	return summary, nil
}

// Draft asks model for a commit message candidate for summary. The candidate
// is returned unvalidated; feedback about a previous rejection is appended to
// the prompt when non-empty.
func (c *Client) Draft(ctx context.Context, summary, model, feedback string) (string, error) {
	text, err := c.Generate(ctx, GenerateRequest{
		Model:  model,
		Prompt: prompt.CommitMessage(summary, feedback),
		Format: messageSchema,
	})
	if err != nil {
		return "", err
	}
	return ParseDraft(text)
}

// DraftMessage drafts and validates in one step. A candidate that fails
// validation is reported as InvalidResponse.
func (c *Client) DraftMessage(ctx context.Context, summary, model string) (commitmsg.Message, error) {
	candidate, err := c.Draft(ctx, summary, model, "")
	if err != nil {
		return commitmsg.Message{}, err
	}

	msg, err := commitmsg.Validate(candidate)
	if err != nil {
		return commitmsg.Message{}, errors.Wrapf(invalidResponse("%v", err), "candidate %q", candidate)
	}
	return msg, nil
}

// ParseDraft extracts the message text from a drafting reply.
// JSON replies must carry a string "message" field; replies without JSON
// (models that ignore the format constraint) use their first non-empty line.
func ParseDraft(text string) (string, error) {
	body := stripCodeFence(strings.TrimSpace(text))
	if body == "" {
		return "", invalidResponse("empty reply")
	}

	if strings.HasPrefix(body, "{") {
		var reply draftReply
		if err := json.Unmarshal([]byte(body), &reply); err != nil {
			return "", invalidResponse("failed to parse JSON reply: %v", err)
		}
		if reply.Message == nil {
			return "", invalidResponse("JSON reply has no message field")
		}
		return strings.TrimSpace(*reply.Message), nil
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "\"'`")
		if line != "" {
			return line, nil
		}
	}
	return "", invalidResponse("empty reply")
}

// stripCodeFence removes a surrounding ``` or ```json fence
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

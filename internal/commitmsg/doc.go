// Package commitmsg decides whether a string is a legal conventional commit
// subject line. Validate is the only way to obtain a Message, so holding a
// Message means the text already passed every check.
package commitmsg

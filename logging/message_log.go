// Package logging provides the bounded message log that the generator,
// spawner and run manager write to through an injected callback.
package logging

import "log"

// MessageLog stores generation messages
type MessageLog struct {
	Messages    []string
	MaxMessages int
	mirror      *log.Logger
}

// NewMessageLog creates a new message log keeping the last maxMessages
// entries. A non-positive size keeps 100.
func NewMessageLog(maxMessages int) *MessageLog {
	if maxMessages <= 0 {
		maxMessages = 100
	}
	return &MessageLog{
		Messages:    []string{},
		MaxMessages: maxMessages,
	}
}

// SetMirror also writes every message to logger. Pass nil to stop mirroring.
func (ml *MessageLog) SetMirror(logger *log.Logger) {
	ml.mirror = logger
}

// Fork returns an empty log of maxMessages entries that mirrors to the same
// logger as ml.
func (ml *MessageLog) Fork(maxMessages int) *MessageLog {
	forked := NewMessageLog(maxMessages)
	forked.mirror = ml.mirror
	return forked
}

// Add adds a message to the log
func (ml *MessageLog) Add(message string) {
	ml.Messages = append(ml.Messages, message)

	// Truncate if we have too many messages
	if len(ml.Messages) > ml.MaxMessages {
		ml.Messages = ml.Messages[len(ml.Messages)-ml.MaxMessages:]
	}

	if ml.mirror != nil {
		ml.mirror.Println(message)
	}
}

// RecentMessages gets the n most recent messages, newest first
func (ml *MessageLog) RecentMessages(n int) []string {
	if n > len(ml.Messages) {
		n = len(ml.Messages)
	}
	if n < 0 {
		n = 0
	}

	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = ml.Messages[len(ml.Messages)-1-i]
	}

	return result
}

// Clear clears all messages
func (ml *MessageLog) Clear() {
	ml.Messages = []string{}
}

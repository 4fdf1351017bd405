package game

import (
	"log/slog"
	"strings"
	"sync"
)

// MsgPriority controls the color of a line in the panel log.
type MsgPriority uint8

const (
	MsgInfo     MsgPriority = iota // cyan
	MsgWarning                     // yellow
	MsgCritical                    // red
	MsgEvent                       // green, game and celestial events
	MsgDebug                       // grey
)

// DefaultLogCapacity is the number of lines the panel keeps.
const DefaultLogCapacity = 200

// LogWidth is the wrap width in characters of the panel log.
const LogWidth = 44

// Message is a single line in the panel log.
type Message struct {
	Text     string
	Priority MsgPriority
}

// MessageLog is a bounded FIFO of messages. It is written from the slog
// handler, which may run on the façade worker, so access is locked.
type MessageLog struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	total    uint64
}

// NewMessageLog creates a log that keeps the most recent maxSize lines.
func NewMessageLog(maxSize int) *MessageLog {
	if maxSize <= 0 {
		maxSize = DefaultLogCapacity
	}
	return &MessageLog{
		messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
	}
}

// Add appends a message, evicting the oldest lines if full. Long messages are
// wrapped at LogWidth.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range wrapText(text, LogWidth) {
		msg := Message{Text: line, Priority: priority}
		if len(l.messages) >= l.maxSize {
			copy(l.messages, l.messages[1:])
			l.messages[len(l.messages)-1] = msg
		} else {
			l.messages = append(l.messages, msg)
		}
		l.total++
	}
}

// Append adds a log record line, coloured by level.
func (l *MessageLog) Append(level slog.Level, line string) {
	switch {
	case level >= slog.LevelError:
		l.Add(line, MsgCritical)
	case level >= slog.LevelWarn:
		l.Add(line, MsgWarning)
	case level >= slog.LevelInfo:
		l.Add(line, MsgInfo)
	default:
		l.Add(line, MsgDebug)
	}
}

// wrapText splits text into lines no longer than maxWidth. Words longer than
// maxWidth are hard-broken.
func wrapText(s string, maxWidth int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var result []string
	line := ""
	for _, w := range words {
		for len(w) > maxWidth {
			if line != "" {
				result = append(result, line)
				line = ""
			}
			result = append(result, w[:maxWidth])
			w = w[maxWidth:]
		}
		switch {
		case line == "":
			line = w
		case len(line)+1+len(w) > maxWidth:
			result = append(result, line)
			line = w
		default:
			line += " " + w
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}

// Len returns the number of lines held.
func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.messages)
}

// Total counts every line ever added, including evicted ones. The panel uses
// it to notice new lines.
func (l *MessageLog) Total() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Recent returns a copy of the last n lines (or fewer if the log is shorter).
func (l *MessageLog) Recent(n int) []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	n = min(n, len(l.messages))
	out := make([]Message, n)
	copy(out, l.messages[len(l.messages)-n:])
	return out
}

// Window returns a copy of up to n lines ending skip lines before the newest.
func (l *MessageLog) Window(skip, n int) []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	end := max(len(l.messages)-skip, 0)
	start := max(end-n, 0)
	out := make([]Message, end-start)
	copy(out, l.messages[start:end])
	return out
}

package server

import (
	"fmt"
	"time"

	"github.com/df07/go-raytracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel.
// Every message is also passed on to the server log.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	next        core.Logger
}

// NewWebLogger creates a new web logger for a specific render. A nil next
// logger discards the server side copy.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, next core.Logger) *WebLogger {
	if next == nil {
		next = core.NopLogger{}
	}
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		next:        next,
	}
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.next.Debugf("[%s] "+format, wl.prefixed(args)...)
	wl.send("debug", format, args)
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.next.Infof("[%s] "+format, wl.prefixed(args)...)
	wl.send("info", format, args)
}

func (wl *WebLogger) Noticef(format string, args ...interface{}) {
	wl.next.Noticef("[%s] "+format, wl.prefixed(args)...)
	wl.send("notice", format, args)
}

func (wl *WebLogger) Warningf(format string, args ...interface{}) {
	wl.next.Warningf("[%s] "+format, wl.prefixed(args)...)
	wl.send("warning", format, args)
}

func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.next.Errorf("[%s] "+format, wl.prefixed(args)...)
	wl.send("error", format, args)
}

func (wl *WebLogger) prefixed(args []interface{}) []interface{} {
	return append([]interface{}{wl.renderID}, args...)
}

// send forwards a message to the web console without ever blocking the render
func (wl *WebLogger) send(level, format string, args []interface{}) {
	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		// Channel full, skip (don't block)
	}
}

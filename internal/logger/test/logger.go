package test

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/synfinatic/ssocreds/internal/logger"
)

// how long GetNext waits for a message
const WAIT = 100 * time.Millisecond

// TestLogger is a logger.CustomLogger which logs JSON into a pipe and
// decodes every line so tests can assert on what was logged:
//
//	tLogger := testlogger.NewTestLogger("DEBUG")
//	oldLogger := log
//	log = tLogger
//	defer func() { log = oldLogger }()
//
//	msg := testlogger.LogMessage{}
//	assert.NoError(t, tLogger.GetNextLevel(slog.LevelWarn, &msg))
type TestLogger struct {
	*logger.Logger
	r        *io.PipeReader
	w        *io.PipeWriter
	errors   chan error
	messages chan LogMessage
	closed   bool
}

// LogMessage holds the attributes our packages log
type LogMessage struct {
	LevelStr string      `json:"level"`
	Level    slog.Level  `json:"-"`
	Message  string      `json:"msg"`
	Source   *FileSource `json:"source"`
	Error    string      `json:"error"`
	Profile  string      `json:"profile"`
	File     string      `json:"file"`
	Kind     string      `json:"kind"`
}

type FileSource struct {
	File     string `json:"file"`
	Function string `json:"function"`
	Line     int    `json:"line"`
}

func NewTestLogger(level string) *TestLogger {
	reader, writer := io.Pipe()

	tl := &TestLogger{
		Logger:   logger.NewLogger(logger.NewJSON, writer, false, logger.LevelStrings[strings.ToUpper(level)], false),
		r:        reader,
		w:        writer,
		errors:   make(chan error, 10),
		messages: make(chan LogMessage, 100),
	}

	go tl.decode()
	return tl
}

// decode reads the pipe until it is closed
func (tl *TestLogger) decode() {
	scanner := bufio.NewScanner(tl.r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		msg := LogMessage{}
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			tl.errors <- fmt.Errorf("unable to decode log message: %s", err.Error())
			continue
		}
		msg.Level = logger.LevelStrings[msg.LevelStr]
		tl.messages <- msg
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.ErrClosedPipe) {
		tl.errors <- err
	}
}

func (tl *TestLogger) Close() {
	tl.closed = true
	tl.w.Close()
	tl.r.Close()
}

// Reset drops any messages which have not been read yet
func (tl *TestLogger) Reset() {
	for {
		select {
		case <-tl.messages:
		default:
			return
		}
	}
}

// GetNext returns the next logged message of any level
func (tl *TestLogger) GetNext(msg *LogMessage) error {
	if tl.closed {
		return errors.New("logger closed")
	}

	timer := time.NewTimer(WAIT)
	defer timer.Stop()

	select {
	case err := <-tl.errors:
		return err
	case m := <-tl.messages:
		*msg = m
		return nil
	case <-timer.C:
		return errors.New("no log messages found")
	}
}

// GetNextLevel returns the next logged message of the given level
func (tl *TestLogger) GetNextLevel(level slog.Level, msg *LogMessage) error {
	for {
		if err := tl.GetNext(msg); err != nil {
			return err
		}
		if msg.Level == level {
			return nil
		}
	}
}

// FindMessage skips ahead to the next message of the given level & text
func (tl *TestLogger) FindMessage(level slog.Level, message string) (LogMessage, error) {
	msg := LogMessage{}
	for {
		if err := tl.GetNextLevel(level, &msg); err != nil {
			return msg, fmt.Errorf("%s %q: %w", strings.TrimSpace(logger.LevelColorsMap[level].Name), message, err)
		}
		if msg.Message == message {
			return msg, nil
		}
	}
}

// Fatal logs at the fatal level without exiting
func (tl *TestLogger) Fatal(msg string, args ...any) {
	tl.Logger.LogWithSource(context.Background(), logger.LevelFatal, logger.StackFrames, msg, args...)
}

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultFile is the log file, relative to the working directory.
const DefaultFile = "logs/gallery.log"

// recentLines is how many console lines Recorder keeps for the on-screen overlay.
const recentLines = 8

// Options configures New. An empty File disables the file sink.
type Options struct {
	Level string
	File  string
}

// Recorder keeps the most recent console lines in memory so they can be drawn over the scene.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Write implements zapcore.WriteSyncer. Each call carries one encoded entry.
func (r *Recorder) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	r.mu.Lock()
	r.lines = append(r.lines, line)
	if len(r.lines) > recentLines {
		r.lines = r.lines[len(r.lines)-recentLines:]
	}
	r.mu.Unlock()
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (r *Recorder) Sync() error { return nil }

// Lines returns a copy of the stored lines, oldest first.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the gallery logger: JSON entries appended to opts.File, console entries on
// stderr and in the returned Recorder. The closer flushes the logger and releases the file;
// the logger must not be used after it is closed.
func New(opts Options) (*zap.Logger, *Recorder, io.Closer, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		l, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("log level: %w", err)
		}
		level = l
	}

	rec := &Recorder{}
	console := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(console, zapcore.Lock(os.Stderr), level),
		zapcore.NewCore(console, rec, level),
	}
	if opts.File == "" {
		return zap.New(zapcore.NewTee(cores...)), rec, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return nil, nil, nil, err
	}
	f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, nil, err
	}
	cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(f), level))
	return zap.New(zapcore.NewTee(cores...)), rec, fileCloser{f}, nil
}

type fileCloser struct{ f *os.File }

func (c fileCloser) Close() error {
	return multierr.Append(c.f.Sync(), c.f.Close())
}

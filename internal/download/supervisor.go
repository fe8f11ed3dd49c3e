package download

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/ytget/tunevault/internal/util"
)

// Buffer sizes
const (
	eventBufferSize    = 64
	maxScannedLineSize = 1024 * 1024
)

// Config holds the positional arguments passed to the downloader executable
type Config struct {
	URL       string
	Codec     string
	Quality   string
	Directory string
}

// Supervisor spawns the external downloader process and turns its
// line-oriented output into typed events
type Supervisor struct {
	binary string
}

// NewSupervisor creates a supervisor for the given downloader executable path
func NewSupervisor(binary string) *Supervisor {
	return &Supervisor{binary: binary}
}

// Start spawns the downloader with the four positional arguments and returns
// the event stream. The channel is closed after the download-complete event.
// Cancelling the context kills the process; the stream still terminates with
// download-complete {success:false}.
func (s *Supervisor) Start(ctx context.Context, cfg Config) (<-chan Event, error) {
	cmd := exec.CommandContext(ctx, s.binary, cfg.URL, cfg.Codec, cfg.Quality, cfg.Directory)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn downloader %s: %w", s.binary, err)
	}

	events := make(chan Event, eventBufferSize)
	go relay(stdout, stderr, cmd.Wait, events)

	return events, nil
}

// relay pumps both output streams into the event channel, waits for process
// exit and emits the terminal download-complete event. Factored out of Start
// so it can be driven with plain readers in tests.
func relay(stdout, stderr io.Reader, wait func() error, events chan<- Event) {
	defer close(events)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		scanStdout(stdout, events)
	}()
	go func() {
		defer wg.Done()
		scanStderr(stderr, events)
	}()

	wg.Wait()

	err := wait()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			util.WarnLog("downloader exited with code %d", exitErr.ExitCode())
		} else {
			util.ErrorLog("downloader wait failed: %v", err)
			events <- Event{Kind: KindError, Err: &ErrorPayload{Message: err.Error()}}
		}
	}

	events <- Event{Kind: KindComplete, Success: err == nil}
}

// scanStdout splits stdout into lines and parses each into a typed event.
// Malformed payloads are logged and dropped; the session continues.
func scanStdout(r io.Reader, events chan<- Event) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxScannedLineSize)

	for scanner.Scan() {
		event, err := ParseLine(scanner.Text())
		if err != nil {
			util.WarnLog("dropping malformed downloader line: %v", err)
			continue
		}
		if event == nil {
			continue
		}
		events <- *event
	}
	if err := scanner.Err(); err != nil {
		util.WarnLog("stdout scan ended: %v", err)
	}
}

// scanStderr forwards each stderr line verbatim as a download-error event
func scanStderr(r io.Reader, events chan<- Event) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxScannedLineSize)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		events <- Event{Kind: KindDownloadError, Message: line}
	}
	if err := scanner.Err(); err != nil {
		util.WarnLog("stderr scan ended: %v", err)
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/SciCalc/internal/emoji"
	"github.com/yildizm/SciCalc/internal/formatter"
	"github.com/yildizm/SciCalc/internal/logger"
	"github.com/yildizm/SciCalc/internal/session"
)

var watchFromStart bool

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Evaluate expressions appended to a file",
		Long: `Watch a file and evaluate every line appended to it.

Uses file system notifications to detect changes. All lines share one
calculator session, so MC, MS and M+ lines work on the memory register.
Press Ctrl+C to stop watching.

Examples:
  scicalc watch scratch.txt
  scicalc watch --from-start notes.calc`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().BoolVar(&watchFromStart, "from-start", false, "evaluate the existing contents before watching")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	filename := args[0]

	log := newLogger("watch")
	log.SetOutput(cmd.ErrOrStderr())

	watcher, file, err := setupFileWatcher(filename, watchFromStart, log)
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := newLineWatcher(filename, newSession(GetGlobalConfig(), log), cmd.OutOrStdout(), log)
	w.attach(file)
	defer w.close()

	if watchFromStart {
		if err := w.drain(); err != nil {
			return err
		}
	}

	return w.run(ctx, watcher)
}

// lineWatcher evaluates complete lines as they are appended to a file. It
// follows the path rather than the open file, so a file that is replaced or
// truncated is read again from its start.
type lineWatcher struct {
	session *session.Session
	out     io.Writer
	log     *logger.Logger
	path    string

	file    *os.File
	reader  *bufio.Reader
	partial string
}

func newLineWatcher(path string, s *session.Session, out io.Writer, log *logger.Logger) *lineWatcher {
	return &lineWatcher{
		session: s,
		out:     out,
		log:     log,
		path:    filepath.Clean(path),
	}
}

// attach starts reading from file at its current offset
func (w *lineWatcher) attach(file *os.File) {
	w.file = file
	w.reader = bufio.NewReader(file)
	w.partial = ""
}

// close releases the current file, if any
func (w *lineWatcher) close() {
	if w.file == nil {
		return
	}
	cleanupFile(w.file, w.log)
	w.file = nil
	w.reader = nil
	w.partial = ""
}

// reopen reads the file at path from its start, after it was created again
func (w *lineWatcher) reopen() error {
	w.close()
	file, err := openWatchFile(w.path, true, w.log)
	if err != nil {
		return err
	}
	w.log.Info("reading %s from the start", w.path)
	w.attach(file)
	return w.drain()
}

// rewindIfTruncated starts over when the file shrank below the read offset
func (w *lineWatcher) rewindIfTruncated() error {
	info, err := w.file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
	}
	offset, err := w.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("failed to read file offset: %w", err)
	}
	if info.Size() >= offset {
		return nil
	}

	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}
	w.log.Info("%s was truncated, reading from the start", w.path)
	w.attach(w.file)
	return nil
}

// run processes file events until ctx is cancelled
func (w *lineWatcher) run(ctx context.Context, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Info("stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if err := w.handleEvent(event); err != nil {
				w.log.Warn("error handling event: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// handleEvent reacts to events on the watched path; the watcher covers the
// whole directory so that a replaced file is noticed
func (w *lineWatcher) handleEvent(event fsnotify.Event) error {
	if filepath.Clean(event.Name) != w.path {
		return nil
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.log.Info("%s was moved or removed, waiting for it to return", w.path)
		w.close()
		return nil

	case event.Has(fsnotify.Create):
		return w.reopen()

	case event.Has(fsnotify.Write):
		if w.file == nil {
			return w.reopen()
		}
		if err := w.rewindIfTruncated(); err != nil {
			return err
		}
		if err := w.drain(); err != nil {
			return fmt.Errorf("error processing new lines: %w", err)
		}
	}
	return nil
}

// drain evaluates every complete line available. A trailing line without a
// newline is kept until the rest of it arrives.
func (w *lineWatcher) drain() error {
	if w.reader == nil {
		return nil
	}
	for {
		chunk, err := w.reader.ReadString('\n')
		if err == io.EOF {
			w.partial += chunk
			return nil
		}
		if err != nil {
			return fmt.Errorf("read error: %w", err)
		}

		line := strings.TrimSpace(w.partial + chunk)
		w.partial = ""
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w.print(evaluateLine(w.session, line))
	}
}

func (w *lineWatcher) print(o formatter.Outcome) {
	switch {
	case o.Command:
		fmt.Fprintf(w.out, "%s %s: memory = %s\n", emoji.GetEmoji("memory"), o.Expression, o.Result)
	case o.Failed() && o.Kind != "":
		fmt.Fprintf(w.out, "%s %s: %s: %s\n", emoji.GetEmoji("error"), o.Expression, o.Kind, o.Error)
	case o.Failed():
		fmt.Fprintf(w.out, "%s %s: %s\n", emoji.GetEmoji("error"), o.Expression, o.Error)
	default:
		fmt.Fprintf(w.out, "%s = %s\n", o.Expression, o.Result)
	}
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher, log *logger.Logger) {
	if err := watcher.Close(); err != nil {
		log.Warn("failed to close watcher: %v", err)
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File, log *logger.Logger) {
	if err := file.Close(); err != nil {
		log.Warn("failed to close file: %v", err)
	}
}

// createWatcher creates a watcher on the directory holding filename, so
// that the file can be replaced or removed and recreated
func createWatcher(filename string, log *logger.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(filepath.Clean(filename))); err != nil {
		cleanupWatcher(watcher, log)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// openWatchFile opens the file positioned at its end, or at its start when
// fromStart is set
func openWatchFile(filename string, fromStart bool, log *logger.Logger) (*os.File, error) {
	// #nosec G304 - path is validated by caller
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if fromStart {
		return file, nil
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		cleanupFile(file, log)
		return nil, fmt.Errorf("failed to seek to end of file: %w", err)
	}

	return file, nil
}

// setupFileWatcher creates the watcher and opens the file
func setupFileWatcher(filename string, fromStart bool, log *logger.Logger) (*fsnotify.Watcher, *os.File, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("file does not exist: %s", filename)
	}

	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	log.Info("watching file: %s", filename)

	watcher, err := createWatcher(filename, log)
	if err != nil {
		return nil, nil, err
	}

	file, err := openWatchFile(filename, fromStart, log)
	if err != nil {
		cleanupWatcher(watcher, log)
		return nil, nil, err
	}

	return watcher, file, nil
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	// Clean the path to resolve . and .. elements
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}

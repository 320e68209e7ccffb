package storage

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/image/bmp"

	"moneyshot/internal/clipboard"
	"moneyshot/internal/config"
)

// ErrInvalidPath rejects empty paths and paths that climb out with "..".
var ErrInvalidPath = errors.New("storage: invalid path")

// JPEGQuality is used for JPG output.
const JPEGQuality = 90

// SaveError is the single error kind for failed persistence. Op is
// "file" or "clipboard".
type SaveError struct {
	Op   string
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("save %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("save %s: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Options select where Save sends an image.
type Options struct {
	Dir         string
	Format      string
	Destination config.Destination
}

// OptionsFrom reads the save options out of s.
func OptionsFrom(s *config.Settings) Options {
	return Options{Dir: s.SavePath, Format: s.FileFormat, Destination: s.SaveDestination}
}

// Result describes a completed Save.
type Result struct {
	Path      string // empty when no file was written
	Clipboard bool
}

func (r Result) String() string {
	switch {
	case r.Path != "" && r.Clipboard:
		return "Saved to " + r.Path + " and copied to clipboard"
	case r.Path != "":
		return "Saved to " + r.Path
	case r.Clipboard:
		return "Copied to clipboard"
	}
	return "Nothing saved"
}

// Service writes finished screenshots to disk and the clipboard.
// Options may be replaced while a save is running on another goroutine.
type Service struct {
	mu   sync.RWMutex
	opts Options
	clip clipboard.Clipboard
	now  func() time.Time
}

func New(opts Options, clip clipboard.Clipboard) *Service {
	return &Service{opts: opts, clip: clip, now: time.Now}
}

func (s *Service) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

func (s *Service) SetOptions(opts Options) {
	s.mu.Lock()
	s.opts = opts
	s.mu.Unlock()
}

// FileName is Screenshot_YYYY-MM-DD_HH-mm-ss.<format in lower case>.
func FileName(format string, t time.Time) string {
	ext := strings.ToLower(strings.TrimSpace(format))
	if ext == "" {
		ext = "png"
	}
	return "Screenshot_" + t.Format("2006-01-02_15-04-05") + "." + ext
}

// Encode writes img to w. JPG/JPEG, BMP and GIF are recognized case
// insensitively; anything else is PNG.
func Encode(w io.Writer, img image.Image, format string) error {
	switch strings.ToUpper(strings.TrimSpace(format)) {
	case "JPG", "JPEG":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case "BMP":
		return bmp.Encode(w, img)
	case "GIF":
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	default:
		return png.Encode(w, img)
	}
}

func validPath(path string) bool {
	return strings.TrimSpace(path) != "" && !config.HasParentRef(path)
}

// SaveToFile encodes img into path, creating parent directories.
func (s *Service) SaveToFile(img image.Image, path, format string) error {
	if !validPath(path) {
		return &SaveError{Op: "file", Path: path, Err: ErrInvalidPath}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &SaveError{Op: "file", Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return &SaveError{Op: "file", Path: path, Err: err}
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(path)
		return &SaveError{Op: "file", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &SaveError{Op: "file", Path: path, Err: err}
	}
	return nil
}

// SaveToClipboard copies img to the clipboard.
func (s *Service) SaveToClipboard(img image.Image) error {
	if s.clip == nil {
		return &SaveError{Op: "clipboard", Err: clipboard.ErrUnavailable}
	}
	if err := s.clip.WriteImage(img); err != nil {
		return &SaveError{Op: "clipboard", Err: err}
	}
	return nil
}

// NextPath is the timestamped file path Save would write now.
func (s *Service) NextPath() string {
	return nextPath(s.Options(), s.now())
}

func nextPath(opts Options, t time.Time) string {
	return filepath.Join(opts.Dir, FileName(opts.Format, t))
}

// Save sends img to the configured destination. With Both, a clipboard
// failure after a successful file write still reports the file.
func (s *Service) Save(img image.Image) (Result, error) {
	var res Result
	opts := s.Options()

	if opts.Destination == config.DestFile || opts.Destination == config.DestBoth {
		if !validPath(opts.Dir) {
			return res, &SaveError{Op: "file", Path: opts.Dir, Err: ErrInvalidPath}
		}
		path := nextPath(opts, s.now())
		if err := s.SaveToFile(img, path, opts.Format); err != nil {
			return res, err
		}
		res.Path = path
	}

	if opts.Destination != config.DestFile {
		if err := s.SaveToClipboard(img); err != nil {
			return res, err
		}
		res.Clipboard = true
	}
	return res, nil
}

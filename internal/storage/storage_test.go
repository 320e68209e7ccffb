package storage

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"moneyshot/internal/config"
)

type fakeClipboard struct {
	got image.Image
	err error
}

func (f *fakeClipboard) WriteImage(img image.Image) error {
	if f.err != nil {
		return f.err
	}
	f.got = img
	return nil
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	return img
}

var fixed = time.Date(2024, 3, 9, 7, 5, 2, 0, time.Local)

func TestFileName(t *testing.T) {
	assert.Equal(t, "Screenshot_2024-03-09_07-05-02.png", FileName("PNG", fixed))
	assert.Equal(t, "Screenshot_2024-03-09_07-05-02.jpg", FileName("JPG", fixed))
	assert.Equal(t, "Screenshot_2024-03-09_07-05-02.png", FileName("", fixed))
}

func TestSaveToFileFormats(t *testing.T) {
	dir := t.TempDir()
	s := New(Options{}, nil)
	img := testImage()

	decoders := map[string]func(f *os.File) (image.Image, error){
		"PNG":  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		"jpeg": func(f *os.File) (image.Image, error) { return jpeg.Decode(f) },
		"BMP":  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
		"gif":  func(f *os.File) (image.Image, error) { return gif.Decode(f) },
		"tiff": func(f *os.File) (image.Image, error) { return png.Decode(f) },
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "sub", "out."+format)
			require.NoError(t, s.SaveToFile(img, path, format))

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			got, err := decode(f)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), got.Bounds())
		})
	}
}

func TestSaveToFileRejectsTraversal(t *testing.T) {
	s := New(Options{}, nil)
	sep := string(filepath.Separator)
	err := s.SaveToFile(testImage(), t.TempDir()+sep+".."+sep+"x.png", "PNG")

	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "file", se.Op)
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestSaveDestinations(t *testing.T) {
	tests := []struct {
		dest     config.Destination
		wantFile bool
		wantClip bool
	}{
		{config.DestClipboard, false, true},
		{config.DestFile, true, false},
		{config.DestBoth, true, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.dest), func(t *testing.T) {
			dir := t.TempDir()
			clip := &fakeClipboard{}
			s := New(Options{Dir: dir, Format: "PNG", Destination: tt.dest}, clip)
			s.now = func() time.Time { return fixed }

			res, err := s.Save(testImage())
			require.NoError(t, err)
			assert.Equal(t, tt.wantClip, res.Clipboard)
			assert.Equal(t, tt.wantClip, clip.got != nil)
			if tt.wantFile {
				assert.Equal(t, filepath.Join(dir, "Screenshot_2024-03-09_07-05-02.png"), res.Path)
				assert.FileExists(t, res.Path)
			} else {
				assert.Empty(t, res.Path)
			}
		})
	}
}

func TestSaveClipboardFailure(t *testing.T) {
	cause := errors.New("locked by another process")
	dir := t.TempDir()
	s := New(Options{Dir: dir, Format: "PNG", Destination: config.DestBoth}, &fakeClipboard{err: cause})

	res, err := s.Save(testImage())
	var se *SaveError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "clipboard", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.NotEmpty(t, res.Path, "the file was still written")
	assert.False(t, res.Clipboard)
}

func TestSaveDirWithDoubleDotName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots..old")
	s := New(Options{Dir: dir, Format: "PNG", Destination: config.DestFile}, nil)

	res, err := s.Save(testImage())
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
}

type countingClipboard struct {
	mu     sync.Mutex
	writes int
}

func (c *countingClipboard) WriteImage(image.Image) error {
	c.mu.Lock()
	c.writes++
	c.mu.Unlock()
	return nil
}

func TestSaveWhileOptionsChange(t *testing.T) {
	clip := &countingClipboard{}
	s := New(Options{Dir: "a", Format: "PNG", Destination: config.DestClipboard}, clip)
	img := testImage()

	const n = 200
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			_, err := s.Save(img)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			dir := "a"
			if i%2 == 1 {
				dir = "b"
			}
			s.SetOptions(Options{Dir: dir, Format: "JPG", Destination: config.DestClipboard})
			_ = s.NextPath()
		}
	}()
	wg.Wait()

	assert.Equal(t, n, clip.writes)
	assert.Equal(t, "JPG", s.Options().Format)
}

func TestSaveInvalidDir(t *testing.T) {
	s := New(Options{Dir: "", Format: "PNG", Destination: config.DestFile}, nil)
	_, err := s.Save(testImage())
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Copied to clipboard", Result{Clipboard: true}.String())
	assert.Equal(t, "Saved to a.png", Result{Path: "a.png"}.String())
	assert.Equal(t, "Saved to a.png and copied to clipboard", Result{Path: "a.png", Clipboard: true}.String())
}

package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MoneyShot", "settings.json")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.FileExists(t, path)

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, again)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"fileFormat": "jpg", "lineThickness": 7}`), 0644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "JPG", s.FileFormat)
	assert.Equal(t, 7, s.LineThickness)
	assert.Equal(t, DestBoth, s.SaveDestination)
	assert.Equal(t, "PrintScreen", s.CaptureHotkey)
	assert.True(t, s.MinimizeToTray)
}

func TestLoadCorruptFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	s, err := Load(path)
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, Default(), s)
}

func TestLoadRepairsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	body := `{
		"saveDestination": "printer",
		"fileFormat": "tiff",
		"lineThickness": 99,
		"captureHotkey": "Ctrl+Q",
		"regionHotkey": "shift+f5",
		"savePath": "../../etc",
		"annotationColor": "#00ff00"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	s, err := Load(path)
	require.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, DestClipboard, s.SaveDestination)
	assert.Equal(t, "PNG", s.FileFormat)
	assert.Equal(t, 20, s.LineThickness)
	assert.Equal(t, "PrintScreen", s.CaptureHotkey)
	assert.Equal(t, "shift+f5", s.RegionHotkey)
	assert.Equal(t, DefaultSavePath(), s.SavePath)
	assert.Equal(t, "#00ff00", s.AnnotationColor)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := Default()
	s.SaveDestination = DestFile
	s.RunOnStartup = true
	s.DisablePrintScreen = true
	s.AnnotationColor = "blue"
	require.NoError(t, s.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestValidateNormalizesCase(t *testing.T) {
	s := Default()
	s.SaveDestination = "file"
	s.FileFormat = " gif "
	assert.NoError(t, s.Validate())
	assert.Equal(t, DestFile, s.SaveDestination)
	assert.Equal(t, "GIF", s.FileFormat)
}

func TestHasParentRef(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{`C:\Users\me\Pictures`, false},
		{`C:\Users\me\shots..old`, false},
		{"/home/me/a..b/c", false},
		{"..", true},
		{"../shots", true},
		{`C:\Users\..\Windows`, true},
		{"/home/me/../root", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HasParentRef(tt.path), tt.path)
	}
}

func TestValidateKeepsDoubleDotName(t *testing.T) {
	s := Default()
	s.SavePath = filepath.Join(t.TempDir(), "shots..old")
	assert.NoError(t, s.Validate())
	assert.Contains(t, s.SavePath, "shots..old")

	sep := string(filepath.Separator)
	s.SavePath = t.TempDir() + sep + ".." + sep + "x"
	assert.ErrorIs(t, s.Validate(), ErrInvalid)
	assert.Equal(t, Default().SavePath, s.SavePath)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("Red")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c)

	c, err = ParseColor("#1a2B3c")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x1a, 0x2b, 0x3c, 255}, c)

	_, err = ParseColor("#123")
	assert.Error(t, err)
	_, err = ParseColor("notacolor")
	assert.Error(t, err)
}

func TestStyle(t *testing.T) {
	s := Default()
	s.AnnotationColor = "black"
	s.LineThickness = 0

	st := s.Style()
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, st.Color)
	assert.Equal(t, 1, st.Thickness)
}

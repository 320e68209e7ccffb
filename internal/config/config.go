package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"moneyshot/internal/annotate"
	"moneyshot/internal/hotkey"
)

// ErrInvalid marks settings values that were replaced with defaults.
var ErrInvalid = errors.New("config: invalid value")

// AppName names the settings directory and the autostart entry.
const AppName = "MoneyShot"

// Destination is where a finished screenshot goes.
type Destination string

const (
	DestClipboard Destination = "Clipboard"
	DestFile      Destination = "File"
	DestBoth      Destination = "Both"
)

// Settings is the persisted user configuration.
type Settings struct {
	SaveDestination    Destination `mapstructure:"saveDestination" json:"saveDestination"`
	SavePath           string      `mapstructure:"savePath" json:"savePath"`
	FileFormat         string      `mapstructure:"fileFormat" json:"fileFormat"`
	AnnotationColor    string      `mapstructure:"annotationColor" json:"annotationColor"`
	LineThickness      int         `mapstructure:"lineThickness" json:"lineThickness"`
	CaptureHotkey      string      `mapstructure:"captureHotkey" json:"captureHotkey"`
	RegionHotkey       string      `mapstructure:"regionHotkey" json:"regionHotkey"`
	MinimizeToTray     bool        `mapstructure:"minimizeToTray" json:"minimizeToTray"`
	StartInTray        bool        `mapstructure:"startInTray" json:"startInTray"`
	RunOnStartup       bool        `mapstructure:"runOnStartup" json:"runOnStartup"`
	DisablePrintScreen bool        `mapstructure:"disablePrintScreen" json:"disablePrintScreen"`
}

// Default returns the settings used on first run.
func Default() *Settings {
	return &Settings{
		SaveDestination: DestBoth,
		SavePath:        DefaultSavePath(),
		FileFormat:      "PNG",
		AnnotationColor: "Red",
		LineThickness:   annotate.DefaultThickness,
		CaptureHotkey:   "PrintScreen",
		RegionHotkey:    "Ctrl+PrintScreen",
		MinimizeToTray:  true,
	}
}

// DefaultSavePath is the user's Pictures folder.
func DefaultSavePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Pictures"
	}
	return filepath.Join(home, "Pictures")
}

// DefaultPath is the settings file location, %APPDATA%\MoneyShot\settings.json
// on Windows.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName, "settings.json")
}

// Load reads the settings at path. A missing file is created with
// defaults. On any error the returned settings are still usable: defaults
// when the file cannot be read, repaired values when some fields were
// invalid.
func Load(path string) (*Settings, error) {
	def := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := def.Save(path); err != nil {
			return def, fmt.Errorf("config: write defaults: %w", err)
		}
		return def, nil
	}

	v := viper.New()
	setDefaults(v, def)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return def, fmt.Errorf("config: read %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return def, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return &s, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("saveDestination", string(d.SaveDestination))
	v.SetDefault("savePath", d.SavePath)
	v.SetDefault("fileFormat", d.FileFormat)
	v.SetDefault("annotationColor", d.AnnotationColor)
	v.SetDefault("lineThickness", d.LineThickness)
	v.SetDefault("captureHotkey", d.CaptureHotkey)
	v.SetDefault("regionHotkey", d.RegionHotkey)
	v.SetDefault("minimizeToTray", d.MinimizeToTray)
	v.SetDefault("startInTray", d.StartInTray)
	v.SetDefault("runOnStartup", d.RunOnStartup)
	v.SetDefault("disablePrintScreen", d.DisablePrintScreen)
}

// Validate repairs out-of-range values in place. The returned error wraps
// ErrInvalid and names every repaired field; nil means nothing changed.
func (s *Settings) Validate() error {
	def := Default()
	var bad []string

	switch Destination(strings.ToLower(string(s.SaveDestination))) {
	case "clipboard":
		s.SaveDestination = DestClipboard
	case "file":
		s.SaveDestination = DestFile
	case "both":
		s.SaveDestination = DestBoth
	default:
		bad = append(bad, "saveDestination")
		s.SaveDestination = DestClipboard
	}

	format := strings.ToUpper(strings.TrimSpace(s.FileFormat))
	switch format {
	case "PNG", "JPG", "JPEG", "BMP", "GIF":
		s.FileFormat = format
	default:
		bad = append(bad, "fileFormat")
		s.FileFormat = def.FileFormat
	}

	if s.SavePath == "" || HasParentRef(s.SavePath) {
		bad = append(bad, "savePath")
		s.SavePath = def.SavePath
	}

	if _, err := ParseColor(s.AnnotationColor); err != nil {
		bad = append(bad, "annotationColor")
		s.AnnotationColor = def.AnnotationColor
	}

	if c := annotate.ClampThickness(s.LineThickness); c != s.LineThickness {
		bad = append(bad, "lineThickness")
		s.LineThickness = c
	}

	if _, err := hotkey.Parse(s.CaptureHotkey); err != nil {
		bad = append(bad, "captureHotkey")
		s.CaptureHotkey = def.CaptureHotkey
	}
	if _, err := hotkey.Parse(s.RegionHotkey); err != nil {
		bad = append(bad, "regionHotkey")
		s.RegionHotkey = def.RegionHotkey
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(bad, ", "))
	}
	return nil
}

// Save writes the settings as indented JSON, creating the directory.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// HasParentRef reports whether any element of path is "..". Either
// separator counts, so Windows paths are checked on every OS.
func HasParentRef(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	for _, p := range parts {
		if p == ".." {
			return true
		}
	}
	return false
}

// Style is the annotation style new editor sessions start with.
func (s *Settings) Style() annotate.Style {
	c, err := ParseColor(s.AnnotationColor)
	if err != nil {
		c = annotate.DefaultColors[0]
	}
	return annotate.Style{Color: c, Thickness: annotate.ClampThickness(s.LineThickness)}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	Width              int    `json:"width"`  // 0 fits the field to the screen
	Height             int    `json:"height"` // 0 fits the field to the screen
	ParagraphIndent    int    `json:"paragraph_indent"`
	Theme              string `json:"theme"`
	AutocompleteMin    int    `json:"autocomplete_min"`
	Backup             bool   `json:"backup"`
	BackupInterval     int    `json:"backup_interval"` // seconds
	InsertFinalNewline bool   `json:"insert_final_newline"`
	EndOfLine          string `json:"end_of_line"` // "lf" or "crlf", for notes the editor creates
}

// FieldSize returns the field's width and height for a screen of the given
// size. The bottom row belongs to the status bar.
func (c *Config) FieldSize(screenW, screenH int) (int, int) {
	w, h := screenW, screenH-1
	if c.Width > 0 && c.Width < w {
		w = c.Width
	}
	if c.Height > 0 && c.Height < h {
		h = c.Height
	}
	return max(w, 1), max(h, 1)
}

// ApplyEditorConfig overrides the field layout with .editorconfig values.
func (c *Config) ApplyEditorConfig(ec *EditorConfigSettings) {
	if ec == nil {
		return
	}
	if ec.MaxLineLength > 0 {
		c.Width = ec.MaxLineLength
	}
	if ec.IndentSize > 0 {
		c.ParagraphIndent = ec.IndentSize
	}
	if ec.EndOfLine != "" {
		c.EndOfLine = ec.EndOfLine
	}
	if ec.InsertFinalNewline != nil {
		c.InsertFinalNewline = *ec.InsertFinalNewline
	}
}

type ColorScheme struct {
	Name            string
	Background      tcell.Color
	Foreground      tcell.Color
	Margin          tcell.Color
	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color
	PopupBg         tcell.Color
	PopupFg         tcell.Color
	PopupSelectBg   tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		Margin:          tcell.ColorDimGray,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		PopupBg:         tcell.ColorBlack,
		PopupFg:         tcell.ColorWhite,
		PopupSelectBg:   tcell.ColorDarkBlue,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		Margin:          tcell.ColorLightGray,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		PopupBg:         tcell.ColorWhite,
		PopupFg:         tcell.ColorBlack,
		PopupSelectBg:   tcell.ColorLightBlue,
	},
	"high-contrast": {
		Name:            "High Contrast",
		Background:      tcell.NewRGBColor(0, 0, 0),
		Foreground:      tcell.NewRGBColor(255, 255, 255),
		Margin:          tcell.NewRGBColor(60, 60, 60),
		StatusBarBg:     tcell.NewRGBColor(0, 0, 200),
		StatusBarFg:     tcell.NewRGBColor(255, 255, 255),
		StatusBarModeBg: tcell.NewRGBColor(200, 200, 0),
		PopupBg:         tcell.NewRGBColor(0, 0, 0),
		PopupFg:         tcell.NewRGBColor(255, 255, 255),
		PopupSelectBg:   tcell.NewRGBColor(0, 80, 160),
	},
}

func Default() *Config {
	return &Config{
		ParagraphIndent:    4,
		Theme:              "monokai",
		AutocompleteMin:    3,
		Backup:             true,
		BackupInterval:     30,
		InsertFinalNewline: true,
		EndOfLine:          "lf",
	}
}

// GetTheme returns the built-in scheme named by Theme, or nil when Theme
// names a highlight style instead.
func (c *Config) GetTheme() *ColorScheme {
	return Themes[c.Theme]
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bibcmd", "settings.json")
}

// DataDir holds the log, sessions and backups.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "bibcmd")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.ParagraphIndent < 0 {
		cfg.ParagraphIndent = 0
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

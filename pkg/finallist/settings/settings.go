// Package settings persists small user preferences to a JSON sidecar file.
package settings

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// FileName is the sidecar file kept beside the executable.
const FileName = ".finallist_settings.json"

// Settings holds the persisted preferences. Absence or corruption of the
// sidecar file is tolerated by falling back to these defaults.
type Settings struct {
	// LastBrowseDir is the directory of the most recently selected sources.
	LastBrowseDir string `mapstructure:"last_browse_dir"`
	// AutoOpen opens the output workbook after a successful merge.
	AutoOpen bool `mapstructure:"auto_open"`
	// ShowHeaderInfo renders per-order header cells in the output.
	ShowHeaderInfo bool `mapstructure:"show_header_info"`

	path string
}

// Load reads the sidecar from dir. A missing or unreadable file yields the
// defaults, never an error.
func Load(dir string) *Settings {
	s := &Settings{path: filepath.Join(dir, FileName)}

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetDefault("last_browse_dir", "")
	v.SetDefault("auto_open", false)
	v.SetDefault("show_header_info", true)

	// Corrupt or absent sidecar falls back to defaults.
	_ = v.ReadInConfig()
	if err := v.Unmarshal(s); err != nil {
		return &Settings{path: s.path, ShowHeaderInfo: true}
	}
	return s
}

// Save writes the current values back to the sidecar.
func (s *Settings) Save() error {
	v := viper.New()
	v.SetConfigType("json")
	v.Set("last_browse_dir", s.LastBrowseDir)
	v.Set("auto_open", s.AutoOpen)
	v.Set("show_header_info", s.ShowHeaderInfo)
	return v.WriteConfigAs(s.path)
}

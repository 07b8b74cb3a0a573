package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"megado/emu/log"
)

type Config struct {
	Input   InputConfig   `toml:"input"`
	Video   VideoConfig   `toml:"video"`
	General GeneralConfig `toml:"general"`
}

type GeneralConfig struct {
	// GameSpeed scales the vblank pacing; 1.0 is stock NTSC.
	GameSpeed float64 `toml:"game_speed"`
}

type VideoConfig struct {
	DisableRendering bool `toml:"disable_rendering"`
}

// InputConfig maps pad buttons to host key names. The names stay opaque
// here; the GUI collaborator interprets them.
type InputConfig struct {
	Up    string `toml:"up"`
	Down  string `toml:"down"`
	Left  string `toml:"left"`
	Right string `toml:"right"`
	A     string `toml:"a"`
	B     string `toml:"b"`
	C     string `toml:"c"`
	Start string `toml:"start"`
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("megado")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

func defaultConfig() Config {
	return Config{
		General: GeneralConfig{GameSpeed: 1.0},
	}
}

// LoadConfigOrDefault loads the configuration from the megado config
// directory, or provides a default one.
func LoadConfigOrDefault() Config {
	var cfg Config
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return defaultConfig()
	}
	if cfg.General.GameSpeed == 0 {
		cfg.General.GameSpeed = 1.0
	}
	return cfg
}

// SaveConfig into the megado config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}

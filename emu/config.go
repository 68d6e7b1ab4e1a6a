package emu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"m6502/emu/log"
	"m6502/hw/hwio"
)

// Device kinds.
const (
	KindRAM    = "ram"    // read-write memory
	KindROM    = "rom"    // read-only memory, optionally filled from an image
	KindPort   = "port"   // write-only output port
	KindRandom = "random" // read-only register returning a random byte on each read
)

var (
	ErrUnknownDeviceKind = errors.New("unknown device kind")
	ErrImageTooLarge     = errors.New("image larger than device range")
)

type Config struct {
	CPU     CPUConfig      `toml:"cpu"`
	Devices []DeviceConfig `toml:"device"`
	Trace   TraceConfig    `toml:"trace"`

	// Bytes written to port devices go to Output (discarded if nil).
	Output io.Writer `toml:"-"`
	// Execution trace destination, overrides Trace.Enabled when non-nil.
	TraceOut io.Writer `toml:"-"`
}

type CPUConfig struct {
	// Written to the reset vector after the program is loaded, if set.
	ResetVector *uint16 `toml:"reset_vector,omitempty"`
	// Stop RunUntilTrap when a BRK is executed.
	TrapBRK bool `toml:"trap_brk"`
}

// DeviceConfig describes a device to map on the bus. Devices are mapped in
// the order they appear, the first one matching an address handles it.
type DeviceConfig struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	Lo    uint16 `toml:"lo"`
	Hi    uint16 `toml:"hi"`
	Image string `toml:"image,omitempty"` // rom only
}

type TraceConfig struct {
	Enabled   bool `toml:"enabled"` // trace execution to stderr
	CallStack bool `toml:"callstack"`
}

// DefaultConfig returns a configuration with a single RAM device covering
// the whole address space.
func DefaultConfig() Config {
	return Config{
		CPU: CPUConfig{TrapBRK: true},
		Devices: []DeviceConfig{
			{Name: "ram", Kind: KindRAM, Lo: 0x0000, Hi: 0xFFFF},
		},
	}
}

// Validate checks device kinds and ranges.
func (cfg *Config) Validate() error {
	for i, dev := range cfg.Devices {
		switch dev.Kind {
		case KindRAM, KindROM, KindPort:
		case KindRandom:
			if dev.Lo != dev.Hi {
				return fmt.Errorf("device #%d (%s): random device must cover a single address", i, dev.Name)
			}
		default:
			return fmt.Errorf("device #%d (%s): %w %q", i, dev.Name, ErrUnknownDeviceKind, dev.Kind)
		}
		if _, err := hwio.NewRange(dev.Lo, dev.Hi, hwio.ReadWriteFlag); err != nil {
			return fmt.Errorf("device #%d (%s): %w", i, dev.Name, err)
		}
		if dev.Image != "" && dev.Kind != KindROM {
			return fmt.Errorf("device #%d (%s): image is only supported by rom devices", i, dev.Name)
		}
	}
	return nil
}

// ConfigDir returns the user-wide configuration directory.
var ConfigDir = sync.OnceValue(func() string {
	cfgdir, err := os.UserConfigDir()
	if err != nil {
		log.ModEmu.Warnf("failed to get user config directory: %v", err)
		return ""
	}
	return filepath.Join(cfgdir, "m6502")
})

const cfgFilename = "config.toml"

// LoadConfig loads and validates the configuration file at path. Relative
// ROM image paths are resolved from the directory of the configuration file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Devices = nil

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) != 0 {
		log.ModEmu.WarnZ("unknown configuration keys").
			String("path", path).
			Stringer("key", undec[0]).
			End()
	}
	if len(cfg.Devices) == 0 {
		cfg.Devices = DefaultConfig().Devices
	}
	for i := range cfg.Devices {
		img := cfg.Devices[i].Image
		if img != "" && !filepath.IsAbs(img) {
			cfg.Devices[i].Image = filepath.Join(filepath.Dir(path), img)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the configuration from the user config
// directory, or provide a default one.
func LoadConfigOrDefault() Config {
	dir := ConfigDir()
	if dir == "" {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(filepath.Join(dir, cfgFilename))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.ModEmu.Warnf("using default config: %v", err)
		}
		return DefaultConfig()
	}
	return cfg
}

// SaveConfig writes cfg at path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0644)
}

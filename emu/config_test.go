package emu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"m6502/hw/hwio"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.toml")
	tcheck(t, os.WriteFile(path, []byte(`
[cpu]
reset_vector = 0xC000
trap_brk = false

[[device]]
name = "out"
kind = "port"
lo = 0xF001
hi = 0xF001

[[device]]
name = "ram"
kind = "ram"
lo = 0x0000
hi = 0xFFFF

[trace]
callstack = true
`), 0644))

	cfg, err := LoadConfig(path)
	tcheck(t, err)

	vec := uint16(0xC000)
	want := Config{
		CPU: CPUConfig{ResetVector: &vec},
		Devices: []DeviceConfig{
			{Name: "out", Kind: KindPort, Lo: 0xF001, Hi: 0xF001},
			{Name: "ram", Kind: KindRAM, Lo: 0x0000, Hi: 0xFFFF},
		},
		Trace: TraceConfig{CallStack: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.toml")
	tcheck(t, os.WriteFile(path, []byte("[trace]\nenabled = true\n"), 0644))

	cfg, err := LoadConfig(path)
	tcheck(t, err)

	want := DefaultConfig()
	want.Trace.Enabled = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want error
	}{
		{
			name: "kind",
			toml: "[[device]]\nname = \"x\"\nkind = \"eeprom\"\nlo = 0\nhi = 1\n",
			want: ErrUnknownDeviceKind,
		},
		{
			name: "inverted",
			toml: "[[device]]\nname = \"x\"\nkind = \"ram\"\nlo = 2\nhi = 1\n",
			want: hwio.ErrInvertedRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "m.toml")
			tcheck(t, os.WriteFile(path, []byte(tt.toml), 0644))

			if _, err := LoadConfig(path); !errors.Is(err, tt.want) {
				t.Errorf("got error %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("syntax", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "m.toml")
		tcheck(t, os.WriteFile(path, []byte("[[device]\n"), 0644))
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("expected an error")
		}
	})

	t.Run("image on ram", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Devices[0].Image = "foo.bin"
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected an error")
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("got error %v, want %v", err, os.ErrNotExist)
		}
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "m.toml")

	vec := uint16(0x8000)
	cfg := DefaultConfig()
	cfg.CPU.ResetVector = &vec
	cfg.Devices = append(cfg.Devices, DeviceConfig{Name: "out", Kind: KindPort, Lo: 0xF001, Hi: 0xF001})
	tcheck(t, SaveConfig(path, cfg))

	got, err := LoadConfig(path)
	tcheck(t, err)
	if diff := cmp.Diff(cfg, got, cmpopts.IgnoreFields(Config{}, "Output", "TraceOut")); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

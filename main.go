package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"m6502/emu"
)

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case runMode:
		runProgram(cli.Run)
	case disasmMode:
		disasmProgram(cli.Disasm)
	case initConfigMode:
		path := cli.InitConfig.Path
		if path == "" {
			dir := emu.ConfigDir()
			if dir == "" {
				fatalf("no user configuration directory, give a path")
			}
			path = filepath.Join(dir, "config.toml")
		}
		checkf(emu.SaveConfig(path, emu.DefaultConfig()), "failed to write configuration")
		fmt.Println(path)
	case versionMode:
		printVersion()
	}
}

func printVersion() {
	version, revision := "(devel)", "no revision information"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" {
			version = info.Main.Version
		}
		modified := false
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				revision = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified {
			revision += "+dirty"
		}
	}
	fmt.Printf("m6502 %s (%s)\n", version, revision)
}

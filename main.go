package main

import (
	"os"
	"runtime/debug"

	"github.com/siyuan-infoblox/ordered-imports/pkg/cmd"
)

func main() {
	buildVersion := ""
	if info, ok := debug.ReadBuildInfo(); ok {
		buildVersion = info.Main.Version
	}
	if err := cmd.Execute(buildVersion); err != nil {
		os.Exit(1)
	}
}

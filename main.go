package main

import "github.com/MatthewDes/EcosolGIS-website/cmd"

// Overridden by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}

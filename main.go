package main

import "github.com/KaramelBytes/dockfinder-cli/cmd"

func main() {
	cmd.Execute()
}

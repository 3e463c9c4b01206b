package main

import "github.com/KaramelBytes/fraudscan-cli/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/theirongolddev/footprint/cmd"

func main() {
	cmd.Execute()
}

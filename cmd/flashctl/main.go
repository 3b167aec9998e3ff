package main

import "flashing-designer/cmd/flashctl/cmd"

func main() {
	cmd.Execute()
}

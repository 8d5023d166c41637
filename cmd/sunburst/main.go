package main

import "sunburst-explorer/internal/cli"

func main() {
	cli.Execute()
}

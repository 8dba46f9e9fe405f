package main

import "github.com/vcdkit/vcd2image/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/forPelevin/lipsync/internal/cli"

func main() {
	cli.Main()
}

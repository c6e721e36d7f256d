package main

import "github.com/otherengine/other/internal/cli"

func main() {
	cli.ExecuteEntrypoint()
}

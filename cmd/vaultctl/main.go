package main

import "mdvault/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/shopfloor-dev/shopfloor/internal/cli"

func main() {
	cli.Execute()
}

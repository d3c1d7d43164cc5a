package main

import (
	"github.com/nhattm/gameshelf/internal/cli"
)

func main() {
	cli.Execute()
}

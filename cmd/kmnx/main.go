package main

import (
	_ "time/tzdata"

	"github.com/mcoot/kmnx-league/internal/cli"
)

func main() {
	cli.Execute()
}

package main

import (
	"github.com/andrescamacho/farmchain-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}

package main

import (
	"github.com/ralekv/ralekv/cmd"
)

func main() {
	cmd.Execute()
}

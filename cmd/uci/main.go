package main

import (
	"os"

	"falcon/uci"
)

func main() {
	uci.NewLoop(os.Stdout).Run(os.Stdin)
}

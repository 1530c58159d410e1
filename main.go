package main

import (
	"os"

	"github.com/PolarWolf314/luacrypto/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

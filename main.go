package main

import (
	"os"

	"github.com/xetibo/resetd/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/studyhub/studydesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

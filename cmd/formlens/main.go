package main

import (
	"github.com/formlens/formlens/cmd"
	"github.com/formlens/formlens/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}

package main

import (
	"os"

	"github.com/ih4temyself/firewall-parser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

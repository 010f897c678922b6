// Package main is the entry point for the sleekctl CLI.
package main

import (
	"github.com/donaldgifford/sleekshop-go/cmd/sleekctl/cmd"
)

func main() {
	cmd.Execute()
}

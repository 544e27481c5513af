//go:build cli
// +build cli

package main

import (
	"woosync.GO/cmd"
	"woosync.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}

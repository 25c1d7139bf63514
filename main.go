package main

import "github.com/lmancini/MTG-Proxyshop/cmd"

// execute is swappable for tests.
var execute = cmd.Execute

func main() {
	execute()
}

package main

import (
	"jailcheck/cmd"
)

func main() {
	cmd.Execute()
}

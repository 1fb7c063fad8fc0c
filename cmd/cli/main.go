package main

import "cineforo/cmd/cli/command"

func main() {
	command.Execute()
}

package main

import "eventteam/cmd/cli/command"

func main() {
	command.Execute()
}

package main

import "github.com/seclens/seclens/cmd/seclens/commands"

func main() {
	commands.Execute()
}

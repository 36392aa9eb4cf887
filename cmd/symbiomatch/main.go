package main

import "symbiomatch-backend/cmd/symbiomatch/commands"

func main() {
	commands.Execute()
}

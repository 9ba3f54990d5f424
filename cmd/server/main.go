package main

import "github.com/ahmetcoskunkizilkaya/nutrition-backend/cmd/server/commands"

func main() {
	commands.Execute()
}

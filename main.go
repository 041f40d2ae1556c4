package main

import "comic_portfolio/commands"

func main() {
	commands.Execute()
}

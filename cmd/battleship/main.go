package main

import "github.com/mitchelldurbincs/battleship/internal/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/akorchagin/partnerpulse/internal/cli"

func main() {
	cli.Execute()
}

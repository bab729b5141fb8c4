package main

import "inkpress/internal/cli"

func main() {
	cli.Execute()
}

package main

import cmd "github.com/df07/raycore/cmd/raycore"

func main() {
	cmd.Execute()
}

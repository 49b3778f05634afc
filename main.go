package main

import "chordpad/cmd"

func main() {
	cmd.Execute()
}

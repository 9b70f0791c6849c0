package main

import "zee5/cmd"

func main() {
	cmd.Execute()
}

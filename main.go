package main

import "taggen/cmd"

func main() {
	cmd.Execute()
}

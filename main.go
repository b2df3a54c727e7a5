package main

import "windisplay/cmd"

func main() {
	cmd.Execute()
}

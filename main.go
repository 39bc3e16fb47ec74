package main

import "extui/cmd"

func main() {
	cmd.Execute()
}

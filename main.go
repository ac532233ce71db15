package main

import "photo-mapper/cmd"

func main() {
	cmd.Execute()
}

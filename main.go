package main

import "bellsync/cmd"

func main() {
	cmd.Execute()
}

package main

import "pairvote/cmd"

func main() {
	cmd.Run()
}

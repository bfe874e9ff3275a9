package main

import "tailortalk/cmd/tailortalk/cmd"

func main() {
	cmd.Execute()
}

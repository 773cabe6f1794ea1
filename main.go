package main

import "github.com/simplybusiness/kiln-release/cmd"

func main() {
	cmd.Execute()
}

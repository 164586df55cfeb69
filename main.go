package main

import "github.com/Rorical/RoriParts/cmd"

func main() {
	cmd.Execute()
}

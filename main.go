package main

import "github.com/notargets/facelist/cmd"

func main() {
	cmd.Execute()
}

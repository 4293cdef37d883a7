package main

import "github.com/smartsavehub/smartsave/cmd"

func main() {
	cmd.Execute()
}

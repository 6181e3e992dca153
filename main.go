package main

import "github.com/Johannes-Berggren/kiki/cmd"

func main() {
	cmd.Execute()
}

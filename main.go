package main

import "github.com/ZacxDev/crank/cmd"

func main() {
	cmd.Execute()
}

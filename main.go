package main

import "github.com/nile-cgpa/terminal/cmd"

func main() {
	cmd.Execute()
}

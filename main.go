package main

import "github.com/gaurav-prasanna/semanticmd/cmd"

func main() {
	cmd.Execute()
}

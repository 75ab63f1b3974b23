package main

import cmd "github.com/kerbaras/anisearch/cmd/anisearch"

func main() {
	cmd.Execute()
}

package main

import "github.com/treeforge/treeforge/cli"

func main() {
	cli.Execute()
}

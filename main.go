package main

import "github.com/okabeworks/visatrans/cmd"

func main() {
	cmd.Execute()
}

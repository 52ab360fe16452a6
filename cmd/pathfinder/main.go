package main

import "github.com/natevvv/graph-search/internal/cmd"

func main() {
	cmd.Execute()
}

package main

import "empireos/cmd/empire/root"

func main() {
	root.Execute()
}

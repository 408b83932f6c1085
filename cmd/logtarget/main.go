package main

import "github.com/dmitrymomot/logtarget/internal/cli"

func main() {
	cli.Execute()
}

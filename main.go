package main

import "github.com/chilli-axe/mpc-autofill-sub000/internal/cli"

func main() {
	cli.Run()
}

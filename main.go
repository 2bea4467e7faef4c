package main

import "b3-dashboard/cli"

func main() {
	cli.Execute()
}

package main

import "github.com/chapool/treasury-api/cmd"

func main() {
	cmd.Execute()
}

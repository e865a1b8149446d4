package main

import "github.com/saadjs/nutri-cli/cmd/nutri"

func main() {
	nutri.Execute()
}

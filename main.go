package main

import "nathanbeddoewebdev/nova-inventory/cmd"

func main() {
	cmd.Execute()
}

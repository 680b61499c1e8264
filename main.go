package main

import "iplist-automanage/cmd"

func main() {
	cmd.Execute()
}

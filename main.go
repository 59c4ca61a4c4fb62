package main

import "biliredirect/cmd"

func main() {
	cmd.Execute()
}

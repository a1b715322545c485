package main

import "github.com/jsphweid/vexvoice/cmd"

func main() {
	cmd.Execute()
}

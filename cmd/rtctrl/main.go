package main

import "github.com/rtctrl/rtctrl/cmd/rtctrl/cmd"

func main() {
	cmd.Execute()
}

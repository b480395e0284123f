package main

import "github.com/masmgr/contribspots/cmd"

func main() {
	cmd.Run()
}

package main

import "github.com/masmgr/gitstats-go/cmd"

func main() {
	cmd.Run()
}

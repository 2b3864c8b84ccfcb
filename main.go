package main

import "github.com/zary0/domainscout/cmd"

func main() {
	cmd.Execute()
}

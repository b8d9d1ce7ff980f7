package main

import "github.com/qrizan/cms-api/cmd"

func main() {
	cmd.Execute()
}

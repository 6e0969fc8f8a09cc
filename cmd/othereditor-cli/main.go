package main

import "othereditor/cmd/othereditor-cli/cmd"

func main() {
	cmd.Execute()
}

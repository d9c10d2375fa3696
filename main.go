package main

import "github.com/timvw/tmux-easyjump/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/tbraun/toggl-jira-reconciler/cmd"

func main() {
	cmd.Execute()
}

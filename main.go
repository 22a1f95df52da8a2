package main

import "github.com/workcalmkite-hue/2025mbti/cmd"

func main() {
	cmd.Execute()
}

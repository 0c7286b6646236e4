package main

import "github.com/frahmantamala/smart-recruiter/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/nunajera/portfolio-backend/cmd"

func main() {
	cmd.Execute()
}

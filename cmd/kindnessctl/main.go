package main

import "github.com/ahmed88lk/KindnessChain/internal/cli"

func main() {
	cli.Execute()
}

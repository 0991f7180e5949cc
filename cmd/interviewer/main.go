package main

import "github.com/xiaot623/gogo/interviewer/internal/cli"

func main() {
	cli.Execute()
}

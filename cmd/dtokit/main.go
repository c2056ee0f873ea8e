package main

import "github.com/reoring/dtokit/internal/cli"

func main() { cli.Execute() }

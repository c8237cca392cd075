package main

import (
	"enrichly/cmd/cmd"
	"enrichly/internal/logger"
)

func main() {
	logger.Init()
	cmd.Execute()
}

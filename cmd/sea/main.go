package main

import (
	"github.com/ecpoint/go-sea/pkg/cmd"
)

func main() {
	cmd.Execute()
}

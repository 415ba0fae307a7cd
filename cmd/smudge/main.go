package main

import (
	"github.com/MeKo-Tech/smudge/cmd/smudge/cmd"
)

func main() {
	cmd.Execute()
}

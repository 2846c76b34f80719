package main

import (
	_ "time/tzdata"

	"todaygenda.com/todaygenda/cmd"
)

func main() {
	cmd.Execute()
}

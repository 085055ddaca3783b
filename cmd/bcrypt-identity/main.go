package main

import (
	"os"

	"github.com/hasbyte1/bcrypt-identity/internal/cli"
)

func main() {
	app := cli.NewApp(cli.NewStdIO(), cli.NewClipboard())
	os.Exit(app.Run(os.Args[1:]))
}

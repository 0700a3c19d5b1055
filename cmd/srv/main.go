package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	server := &srv{}
	app := &cli.App{
		Name:  "pastevault",
		Usage: "pastevault backend server",
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "run the api server",
				Action: server.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "migrate the database schema",
				Action: server.migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

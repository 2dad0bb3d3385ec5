package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/blocks"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/cat"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/query"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/stats"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/watch"
)

func main() {

	app := &cli.App{
		Name:  "golembase CLI",
		Usage: "Golem Base",

		Commands: []*cli.Command{
			entity.Entity(),
			blocks.Blocks(),
			cat.Cat(),
			query.Query(),
			watch.Watch(),
			stats.Stats(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

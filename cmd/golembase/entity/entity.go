package entity

import (
	"github.com/urfave/cli/v2"

	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/create"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/delete"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/extend"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/history"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/list"
	"github.com/Golem-Base/golembase-sdk-go/cmd/golembase/entity/update"
)

func Entity() *cli.Command {
	return &cli.Command{
		Name:  "entity",
		Usage: "Manage entities",
		Subcommands: []*cli.Command{
			create.Create(),
			delete.Delete(),
			update.Update(),
			extend.Extend(),
			list.List(),
			history.History(),
		},
	}
}

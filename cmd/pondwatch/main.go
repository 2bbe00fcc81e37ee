package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/pondworks/pondwatch/internal/clock"
	"github.com/pondworks/pondwatch/internal/config"
	"github.com/pondworks/pondwatch/internal/migration"
	"github.com/pondworks/pondwatch/internal/server"
	"github.com/pondworks/pondwatch/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

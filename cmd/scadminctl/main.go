package main

import (
	"github.com/danmuck/scadmin/internal/cli"
	"github.com/danmuck/scadmin/internal/observability"
)

func main() {
	observability.InitLogger("scadminctl")
	cli.Execute()
}

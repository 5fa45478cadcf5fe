/*
Copyright © 2026 Micromachine
*/
package main

import (
	"log/slog"

	"micromachine.dev/bundle-utils/cmd"
	"micromachine.dev/bundle-utils/lib/utils"
)

func main() {
	slog.SetDefault(slog.New(utils.NewColorHandler()))
	cmd.Execute()
}

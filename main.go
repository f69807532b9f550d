package main

import (
	"context"

	"github.com/spf13/cobra"

	"ollamadash/cmd"
)

func main() {
	cobra.CheckErr(cmd.NewCLI().ExecuteContext(context.Background()))
}

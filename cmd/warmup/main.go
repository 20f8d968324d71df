package main

import (
	"fmt"
	"os"

	warmupcmd "github.com/yksanjo/email-warmup-service/pkg/cmd"
)

func main() {
	root := warmupcmd.NewRootCommand(warmupcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

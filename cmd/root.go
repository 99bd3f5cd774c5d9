package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ralekv/ralekv/cmd/kv"
	"github.com/ralekv/ralekv/cmd/serve"
	"github.com/ralekv/ralekv/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ralekv",
		Short: "replicated key-value store with a text command protocol",
		Long: fmt.Sprintf(`ralekv (v%s)

A replicated, consistent key-value store written in Go. Nodes agree on
writes via RAFT consensus and speak a line-oriented text protocol that
accepts both JSON and plain-text commands.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of ralekv",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("ralekv v%s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix, http)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

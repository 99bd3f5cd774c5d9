package kv

import (
	"github.com/ralekv/ralekv/cmd/util"
	"github.com/ralekv/ralekv/protocol/client"
	"github.com/spf13/cobra"
)

var (
	kvClient *client.Client

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:               "kv",
		Short:             "Perform key-value store operations",
		PersistentPreRunE: setupKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common client flags to the KV command
	util.SetupClientFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(putCmd)
	KeyValueCommands.AddCommand(listCmd)
	KeyValueCommands.AddCommand(statusCmd)
	KeyValueCommands.AddCommand(stopCmd)
	KeyValueCommands.AddCommand(addCmd)
	KeyValueCommands.AddCommand(removeCmd)
	KeyValueCommands.AddCommand(rawCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the protocol client
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	// Get client configuration components
	config := util.GetClientConfig()

	// Get the transport
	t, err := util.GetClientTransport()
	if err != nil {
		return err
	}

	// Create the protocol client
	kvClient, err = client.New(*config, t)

	return err
}

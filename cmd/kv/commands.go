package kv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if value, err := kvClient.Get(key); err != nil {
				return err
			} else {
				fmt.Printf("key=%s, value=%s\n", key, value)
			}
			return nil
		},
	}
	putCmd = &cobra.Command{
		Use:   "put [key] [value...]",
		Short: "Stores the value for a key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			// The protocol treats everything after the key as the value
			value := strings.Join(args[1:], " ")
			if _, err := kvClient.Put(key, value); err != nil {
				return err
			} else {
				fmt.Println("put successfully")
			}
			return nil
		},
	}
	listCmd = &cobra.Command{
		Use:   "list",
		Short: "Lists the nodes of the cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resp, err := kvClient.List(); err != nil {
				return err
			} else {
				fmt.Println(resp)
			}
			return nil
		},
	}
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Shows the status of the serving node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resp, err := kvClient.Status(); err != nil {
				return err
			} else {
				fmt.Println(resp)
			}
			return nil
		},
	}
	stopCmd = &cobra.Command{
		Use:   "stop",
		Short: "Sends the advisory stop command to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if resp, err := kvClient.Stop(); err != nil {
				return err
			} else {
				fmt.Println(resp)
			}
			return nil
		},
	}
	addCmd = &cobra.Command{
		Use:   "add [node_id] [name] [ip] [rale_port] [dstore_port]",
		Short: "Requests adding a node to the cluster",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("node_id must be a number: %w", err)
			}
			ralePort, err := strconv.Atoi(args[3])
			if err != nil {
				return fmt.Errorf("rale_port must be a number: %w", err)
			}
			dstorePort, err := strconv.Atoi(args[4])
			if err != nil {
				return fmt.Errorf("dstore_port must be a number: %w", err)
			}
			if resp, err := kvClient.AddNode(nodeID, args[1], args[2], ralePort, dstorePort); err != nil {
				return err
			} else {
				fmt.Println(resp)
			}
			return nil
		},
	}
	removeCmd = &cobra.Command{
		Use:   "remove [node_id]",
		Short: "Requests removing a node from the cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("node_id must be a number: %w", err)
			}
			if resp, err := kvClient.RemoveNode(nodeID); err != nil {
				return err
			} else {
				fmt.Println(resp)
			}
			return nil
		},
	}
	rawCmd = &cobra.Command{
		Use:   "raw [request...]",
		Short: "Sends a raw protocol request and prints the raw response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if resp, err := kvClient.Do(strings.Join(args, " ")); err != nil {
				return err
			} else {
				fmt.Println(resp)
			}
			return nil
		},
	}
)

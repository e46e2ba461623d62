// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grimm.is/sockets"
)

func newConnectCommand() *cobra.Command {
	var (
		host string
		port uint16
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to the countdown server and print its lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "localhost", "server hostname or IP address")
	cmd.Flags().Uint16Var(&port, "port", 12345, "server TCP port")
	return cmd
}

func runConnect(host string, port uint16) error {
	conn, err := sockets.Dial(sockets.FamilyUnspecified, host, port)
	if err != nil {
		return err
	}
	defer conn.Close()

	var buffer strings.Builder
	for conn.IsConnected() {
		fut, err := conn.Receive(512)
		if err != nil {
			return err
		}
		chunk, err := fut.Get()
		if err != nil {
			return err
		}
		buffer.Write(chunk)

		// Print every complete line accumulated so far.
		text := buffer.String()
		for {
			idx := strings.IndexByte(text, '\n')
			if idx < 0 {
				break
			}
			fmt.Println(text[:idx])
			text = text[idx+1:]
		}
		buffer.Reset()
		buffer.WriteString(text)
	}
	return nil
}

package main

import (
	"fmt"
	"github.com/davecgh/go-spew/spew"
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/spf13/cobra"
)

func (self *app) decodeCmd() *cobra.Command {
	var dump bool
	cmd := &cobra.Command{
		Use:   "decode HEX",
		Short: "Decode concatenated action records into text notation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := parseHex(args[0])
			if err != nil {
				return err
			}
			list, err := ofp4.DecodeActions(data)
			if err != nil {
				return actionError(err)
			}
			self.log.WithField("count", len(list)).Debug("decoded")
			if dump {
				spew.Fdump(cmd.OutOrStdout(), list)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), list.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the decoded values")
	return cmd
}

package main

import (
	"encoding/hex"
	"fmt"
	"github.com/floodlight/oftest-sub002/ofp4"
	"github.com/spf13/cobra"
	"strings"
)

func (self *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "encode ACTIONS...",
		Short:   "Encode actions in text notation to hex",
		Example: "  ofaction encode push_vlan=0x8100,set_vlan_vid=0x1005,output=2",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := ofp4.ParseActions(strings.Join(args, ","))
			if err != nil {
				return err
			}
			data, err := list.MarshalBinary()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}
}

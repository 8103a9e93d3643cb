package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var listPrefix string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored images",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logg, _ := newService(ctx)

		infos, err := svc.ListImages(ctx, listPrefix)
		if err != nil {
			logg.Error("List failed", zap.Error(err))
			return err
		}

		for _, info := range infos {
			fmt.Printf("%s\t%d\t%s\n", info.Key, info.Size, info.LastModified.Format(time.RFC3339))
		}
		fmt.Printf("\nTotal: %d objects\n", len(infos))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listPrefix, "prefix", "", "Only list objects with this name prefix")
}

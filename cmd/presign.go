package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var presignExpiry int

// presignCmd represents the presign command
var presignCmd = &cobra.Command{
	Use:   "presign [object]",
	Short: "Generate a time-limited download URL",
	Long: `Issues a presigned GET URL for an object in the bucket. The object is
not checked for existence; a URL for an absent object fails only when it is
dereferenced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logg, _ := newService(ctx)

		url, err := svc.GeneratePresignedURL(ctx, args[0], time.Duration(presignExpiry)*time.Second)
		if err != nil {
			logg.Error("Presign failed", zap.String("object", args[0]), zap.Error(err))
			return err
		}

		fmt.Println(url)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(presignCmd)
	presignCmd.Flags().IntVar(&presignExpiry, "expiry", 0, "URL lifetime in seconds (0 uses the configured default)")
}

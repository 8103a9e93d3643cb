package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"profile-store/feature/image"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var uploadName string
var uploadUser string

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a profile image",
	Long: `Validates and uploads an image file to the bucket, then prints its
canonical URL. The object is named after --name, --user (as <id>.<ext>, so a
user's previous image is replaced) or a freshly generated UUID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logg, _ := newService(ctx)

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()

		objectName := uploadName
		if objectName == "" {
			ext := strings.TrimPrefix(filepath.Ext(args[0]), ".")
			owner := uploadUser
			if owner == "" {
				owner = uuid.New().String()
			}
			objectName = owner + "." + ext
		}

		url, err := svc.StoreImage(ctx, f, objectName)
		if err != nil {
			var extErr *image.InvalidExtensionError
			if errors.As(err, &extErr) {
				return fmt.Errorf("rejected upload: %w", err)
			}
			logg.Error("Upload failed", zap.String("object", objectName), zap.Error(err))
			return err
		}

		logg.Info("Image stored", zap.String("object", objectName))
		fmt.Println(url)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Object name to store under (overrides --user)")
	uploadCmd.Flags().StringVar(&uploadUser, "user", "", "Owner id; the object is named <id>.<extension>")
}

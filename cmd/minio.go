package cmd

import (
	"fmt"

	"bellsync/storage"

	"github.com/spf13/cobra"
)

var (
	minioPrefix string
	minioStats  bool
)

var minioCmd = &cobra.Command{
	Use:   "minio",
	Short: "List uploaded clips in the MinIO bucket",
	Long:  `List song and panic clips stored in the configured MinIO bucket, optionally with a summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("MinIO: %s, bucket: %s\n", cfg.MinioEndpoint, cfg.MinioBucket)

		store, err := storage.NewMinioBlobStore(cmd.Context(), storage.MinioOptions{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			Region:    cfg.MinioRegion,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return err
		}

		objects, err := store.List(cmd.Context(), minioPrefix)
		if err != nil {
			return err
		}
		for _, obj := range objects {
			fmt.Printf("%-48s %10s  %s\n", obj.Name, storage.FormatSize(obj.Size), obj.LastModified.Format("2006-01-02 15:04:05"))
		}

		if minioStats {
			stats := storage.Summarize(objects)
			fmt.Printf("\nObjects: %d (songs %d, panics %d)\n", stats.TotalObjects, stats.Songs, stats.Panics)
			fmt.Printf("Total size: %s\n", storage.FormatSize(stats.TotalSize))
			if !stats.LastModified.IsZero() {
				fmt.Printf("Last upload: %s\n", stats.LastModified.Format("2006-01-02 15:04:05"))
			}
		}
		return nil
	},
}

func init() {
	minioCmd.Flags().StringVarP(&minioPrefix, "prefix", "p", "", "only list objects with this prefix (song_ or panic_)")
	minioCmd.Flags().BoolVarP(&minioStats, "stats", "s", false, "print a summary after the listing")
	rootCmd.AddCommand(minioCmd)
}

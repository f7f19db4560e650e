package cmd

import (
	"fmt"

	"bellsync/core/alert"
	"bellsync/db"

	"github.com/spf13/cobra"
)

var redisCmd = &cobra.Command{
	Use:   "redis",
	Short: "Check the Redis connection and show the shared panic record",
	Long:  `Ping Redis with the configured settings and print the panic record stored under PANIC_KEY without consuming it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("Redis: %s:%s, DB: %d, key: %s\n", cfg.RedisHost, cfg.RedisPort, cfg.RedisDB, cfg.PanicKey)

		client, err := db.ConnectRedis(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		fmt.Println("Redis connection OK")

		rec, err := alert.NewRedisSignal(client, cfg.PanicKey).Peek(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Panic status: %s\n", rec.Status)
		if rec.Filename != "" {
			fmt.Printf("  filename:  %s\n", rec.Filename)
			fmt.Printf("  timestamp: %s\n", rec.Timestamp)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(redisCmd)
}

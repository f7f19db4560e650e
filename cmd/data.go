package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"bellsync/core/schedule"
	"bellsync/model"
	"bellsync/repository"

	"github.com/spf13/cobra"
)

var dataSeedForce bool

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Inspect or initialize the stored schedule",
}

var dataShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored songs and events as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := repository.Open(cfg)
		if err != nil {
			return err
		}
		defer closeRepo()

		store, err := schedule.Open(cmd.Context(), repo)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(store.Snapshot())
	},
}

var dataSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the sample schedule to the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, closeRepo, err := repository.Open(cfg)
		if err != nil {
			return err
		}
		defer closeRepo()

		_, err = repo.Load(cmd.Context())
		switch {
		case err == nil && !dataSeedForce:
			return fmt.Errorf("%s already holds a document; use --force to overwrite it", repo.Location())
		case err != nil && !errors.Is(err, repository.ErrDocumentNotFound) && !dataSeedForce:
			return err
		}

		if err := repo.Save(cmd.Context(), model.SeedDocument()); err != nil {
			return err
		}
		fmt.Printf("Seed document written to %s\n", repo.Location())
		return nil
	},
}

func init() {
	dataSeedCmd.Flags().BoolVar(&dataSeedForce, "force", false, "overwrite an existing document")
	dataCmd.AddCommand(dataShowCmd, dataSeedCmd)
	rootCmd.AddCommand(dataCmd)
}

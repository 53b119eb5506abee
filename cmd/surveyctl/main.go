package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kaanoztekin99/3d-object-generation/internal/client"
	"github.com/kaanoztekin99/3d-object-generation/internal/config"
	"github.com/kaanoztekin99/3d-object-generation/internal/service"
	"github.com/kaanoztekin99/3d-object-generation/internal/store"
	"github.com/kaanoztekin99/3d-object-generation/internal/survey"
	"github.com/spf13/cobra"
)

var configDir string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "surveyctl",
		Short:         "Operator tool for the 3D model comparison survey",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "configs", "配置文件目录")

	root.AddCommand(newSubmitCmd(), newCatalogCmd(), newArchiveCmd())
	return root
}

func newSubmitCmd() *cobra.Command {
	var (
		file     string
		endpoint string
		timeout  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "POST rows from a JSON file to the save endpoint",
		Long:  `The file holds {"rows": [[name, gender, age, experience, question, model, rating], ...]}.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var req client.SaveRequest
			if err := json.Unmarshal(data, &req); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			if endpoint == "" {
				cfg, err := config.LoadConfig(configDir)
				if err != nil {
					return err
				}
				endpoint = cfg.Survey.SaveEndpoint
			}

			c := client.NewSubmissionClient(endpoint, timeout)
			if err := c.SubmitRecords(cmd.Context(), req.Rows); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d rows to %s\n", len(req.Rows), endpoint)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "rows JSON file")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "save endpoint (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	cmd.MarkFlagRequired("file")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the question catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := config.LoadConfig(configDir)
				if err != nil {
					return err
				}
				file = cfg.Survey.CatalogPath
			}
			catalog, err := survey.LoadCatalog(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, q := range catalog.Questions {
				fmt.Fprintf(out, "%s\t%s\n\tA: %s\n\tB: %s\n\timage: %s\n", q.ID, q.Text, q.ItemA, q.ItemB, q.Image)
			}
			fmt.Fprintf(out, "%d questions, %d rating fields per submission\n", catalog.Len(), 2*catalog.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML (default from config, built-in if unset)")
	return cmd
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Upload a snapshot of the results CSV to the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return err
			}
			provider, err := service.NewStorageProvider(&cfg.Storage)
			if err != nil {
				return err
			}
			archive := service.NewArchiveService(store.NewCSVStore(cfg.CSV.Path, nil), provider, cfg.Storage.ArchivePrefix)

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()
			url, err := archive.Archive(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/and161185/hr-console/internal/backup"
	"github.com/and161185/hr-console/internal/cleanup"
	"github.com/and161185/hr-console/internal/credentials"
	"github.com/and161185/hr-console/internal/dashboard"
	"github.com/and161185/hr-console/internal/metrics"
	"github.com/and161185/hr-console/internal/transactions"
	"github.com/and161185/hr-console/internal/view"
	"github.com/and161185/hr-console/model"
)

func newTxCmd(a *app) *cobra.Command {
	var sample bool

	cmd := &cobra.Command{
		Use:   "tx [file]",
		Short: "Submit a bulk record transaction (reads stdin without a file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw []byte
			var err error
			switch {
			case sample:
				raw = transactions.SamplePayload()
			case len(args) == 1:
				raw, err = os.ReadFile(args[0])
			default:
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}

			result, err := transactions.Submit(cmd.Context(), a.client, raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&sample, "sample", false, "Send the built-in sample payload")
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	var format, dir string

	cmd := &cobra.Command{
		Use:   "backup <table>...",
		Short: "Trigger a backup of the given tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := backup.New(a.client)
			result, err := wf.Run(cmd.Context(), format, dir, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "parquet", "Backup format: parquet or avro")
	cmd.Flags().StringVar(&dir, "dir", "respaldos", "Backup directory on the server")
	return cmd
}

func newBackupsCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backups <table>",
		Short: "List available backup files for a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := backup.New(a.client)
			files, err := wf.List(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintf(out, "No backups found in %s for %s\n", dir, args[0])
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(out, "%s (%s, %s)\n", f.Name, f.Format, f.Date)
			}
			fmt.Fprintf(out, "Backups listed: %d\n", len(files))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "respaldos", "Backup directory on the server")
	return cmd
}

func newRestoreCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "restore <table> [filename]",
		Short: "Restore a table from a backup file (newest when omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := backup.New(a.client)
			files, err := wf.List(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return backup.ErrNoFile
			}

			var file model.BackupFile
			if len(args) == 2 {
				found := false
				for _, f := range files {
					if f.Name == args[1] {
						file, found = f, true
						break
					}
				}
				if !found {
					return fmt.Errorf("backup %q not found in %s", args[1], dir)
				}
			} else {
				file = files[0] // newest, the list is sorted descending
			}

			result, err := wf.Restore(cmd.Context(), args[0], file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "respaldos", "Backup directory on the server")
	return cmd
}

func newCleanCmd(a *app) *cobra.Command {
	var dir string
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean <table>",
		Short: "Delete all records of a table, gated on a same-day backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirmer cleanup.Confirmer
			if yes {
				confirmer = cleanup.ConfirmerFunc(func(_ context.Context, _ string) (bool, error) {
					return true, nil
				})
			} else {
				confirmer = &cleanup.StdinConfirmer{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			}

			guard := cleanup.NewGuard(a.client, confirmer)
			outcome, err := guard.Run(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "respaldos", "Backup directory on the server")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the interactive confirmation")
	return cmd
}

func newMetricsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Render hiring dashboards from the service metrics",
	}
	cmd.AddCommand(newDepartmentsCmd(a), newQuartersCmd(a))
	return cmd
}

func newDepartmentsCmd(a *app) *cobra.Command {
	var year int
	var serve bool

	cmd := &cobra.Command{
		Use:   "departments",
		Short: "Departments hiring above the yearly average",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := metrics.FetchDepartments(cmd.Context(), a.client, year)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID, Department, Hired")
			for _, row := range rows {
				fmt.Fprintf(out, "%d, %s, %d\n", row.ID.Int(), row.Department, row.Hired.Int())
			}

			rep := metrics.AggregateDepartments(rows)
			orch := dashboard.NewOrchestrator(a.engine, dashboard.NewTermView(out, a.engine, a.cfg.OutputDir))
			if err := orch.ShowDepartments(rep); err != nil {
				return err
			}
			return a.maybeServe(cmd, serve)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year to query")
	cmd.Flags().BoolVar(&serve, "serve", false, "Serve the rendered dashboard locally afterwards")
	return cmd
}

func newQuartersCmd(a *app) *cobra.Command {
	var year int
	var includeNulls, serve bool

	cmd := &cobra.Command{
		Use:   "quarters",
		Short: "Hires per quarter by department and job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := metrics.FetchQuarters(cmd.Context(), a.client, year, includeNulls)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "department, job, q1, q2, q3, q4")
			for _, row := range rows {
				fmt.Fprintf(out, "%s, %s, %d, %d, %d, %d\n",
					row.Department, row.Job, row.Q1.Int(), row.Q2.Int(), row.Q3.Int(), row.Q4.Int())
			}

			rep := metrics.AggregateQuarters(rows)
			orch := dashboard.NewOrchestrator(a.engine, dashboard.NewTermView(out, a.engine, a.cfg.OutputDir))
			if err := orch.ShowQuarters(rep); err != nil {
				return err
			}
			return a.maybeServe(cmd, serve)
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "Year to query")
	cmd.Flags().BoolVar(&includeNulls, "include-nulls", false, "Include rows with null quarters")
	cmd.Flags().BoolVar(&serve, "serve", false, "Serve the rendered dashboard locally afterwards")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "register <email>",
		Short: "Register an email and cache the issued API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.TrimSpace(args[0])
			reg, resp, err := credentials.Register(cmd.Context(), a.client, a.store, email)
			if err != nil {
				return err
			}
			if reg == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "HTTP %d - %s\n", resp.Status, resp.Text())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key saved for %s\n", reg.Email)
			return nil
		},
	}
}

func (a *app) maybeServe(cmd *cobra.Command, serve bool) error {
	if !serve {
		return nil
	}
	viewer := view.NewViewer(a.engine, a.cfg.ViewerAddr, a.logger)
	return viewer.Run(cmd.Context())
}

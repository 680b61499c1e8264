package cmd

import (
	"context"
	"fmt"

	"iplist-automanage/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and the history database",
	Long:  `Checks the bucket folder structure, the configured bucket exports and the run history schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// exportsCmd represents the integrity exports command
var exportsCmd = &cobra.Command{
	Use:   "exports",
	Short: "Check the configured bucket exports",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and migrate the run history schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	integrityCmd.PersistentFlags().BoolVar(&fixFlag, "fix", false, "Create missing folders / migrate history tables")
	integrityCmd.AddCommand(structureCmd, exportsCmd, schemaCmd)
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(ctx context.Context, runStructure, runExports, runSchema bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	cfg, logg := rt.cfg, rt.logger
	defer logg.Sync()

	var client = rt.storageClient()
	if (runStructure || runExports) && client == nil {
		return fmt.Errorf("storage client unavailable")
	}

	db, err := rt.historyDB(runSchema)
	if err != nil {
		return err
	}

	svc := integrity.NewService(client, cfg.Storage, logg, db, cfg.Reconcile.Inputs())
	failed := false

	if runStructure {
		logg.Info("Checking folder structure...", zap.String("bucket", cfg.Storage.Bucket))
		missing, err := svc.CheckStructure(ctx)
		switch {
		case err != nil && !(fixFlag && integrity.IsBucketMissing(err)):
			logg.Error("Structure check failed", zap.Error(err))
			failed = true
		case err != nil || len(missing) > 0:
			if err != nil {
				logg.Warn("Bucket is missing", zap.String("bucket", cfg.Storage.Bucket))
			} else {
				logg.Warn("Missing folders", zap.Strings("folders", missing))
			}
			if fixFlag {
				if err := svc.FixStructure(ctx, missing); err != nil {
					logg.Error("Failed to fix structure", zap.Error(err))
					failed = true
				} else {
					logg.Info("Structure fixed successfully.")
				}
			} else {
				logg.Info("Run with --fix to create missing folders.")
				failed = true
			}
		default:
			logg.Info("Structure is valid.")
		}
	}

	if runExports {
		logg.Info("Checking configured exports...", zap.Strings("inputs", cfg.Reconcile.Inputs()))
		missing, err := svc.CheckExports(ctx)
		switch {
		case err != nil:
			logg.Error("Exports check failed", zap.Error(err))
			failed = true
		case len(missing) > 0:
			logg.Warn("Missing exports", zap.Strings("objects", missing))
			failed = true
		default:
			logg.Info("All configured exports are present.")
		}
	}

	if runSchema && db != nil {
		if fixFlag {
			if err := svc.FixSchema(); err != nil {
				logg.Error("Schema migration failed", zap.Error(err))
				failed = true
			}
		}

		logg.Info("Checking history schema...", zap.String("driver", cfg.Database.Driver))
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
			failed = true
		} else if report.Matched {
			logg.Info("History schema matches the models.")
		} else {
			failed = true
			logg.Warn("History schema mismatches found")
			for table, tblReport := range report.Tables {
				if tblReport.Status == "ok" {
					continue
				}
				if tblReport.Missing {
					logg.Warn("Missing table", zap.String("table", table))
				}
				if len(tblReport.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tblReport.MissingColumns))
				}
				if len(tblReport.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tblReport.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
			if !fixFlag {
				logg.Info("Run with --fix to migrate the history tables.")
			}
		}
	}

	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}

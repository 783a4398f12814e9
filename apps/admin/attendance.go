package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/attendance"
)

const defaultBatchSize = 10

// sampleBatches are added by the seed command.
var sampleBatches = []attendance.NewBatch{
	{Date: "2024-12-02", Periods: []int{1}, StudentName: "홍길동", StudentCode: "10101", StudentNumber: "1", Reason: "병원"},
	{Date: "2024-12-02", Periods: []int{2}, StudentName: "김철수", StudentCode: "10102", StudentNumber: "2", Reason: "학원"},
	{Date: "2024-12-03", Periods: []int{1}, StudentName: "홍길동", StudentCode: "10101", StudentNumber: "1", Reason: "병원"},
	{Date: "2024-12-03", Periods: []int{3}, StudentName: "이영희", StudentCode: "10103", StudentNumber: "3", Reason: "동아리"},
}

func (cli *commandLine) syncCmd() *cobra.Command {
	var from, to string
	var batchSize int
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sync --from STORE --to STORE",
		Short: "Copy attendance records from one store to the other",
		Long: `Copy every attendance record of a store into the other one.

Records written to the local store while the primary was down are never
replayed automatically: run this once the primary is back.

Examples:
  admin sync --from local --to primary
  admin sync --from local --to primary --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == to {
				return fmt.Errorf("--from and --to must name different stores")
			}
			if batchSize <= 0 {
				return fmt.Errorf("--batch-size must be positive")
			}
			return cli.sync(from, to, batchSize, dryRun)
		},
	}
	cmd.Flags().StringVar(&from, "from", "local", "store to read from")
	cmd.Flags().StringVar(&to, "to", "primary", "store to write to")
	cmd.Flags().IntVar(&batchSize, "batch-size", defaultBatchSize, "number of records per batch")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be copied without copying")
	return cmd
}

func (cli *commandLine) sync(from, to string, batchSize int, dryRun bool) error {
	ctx := context.Background()
	src, err := cli.store(from)
	if err != nil {
		return err
	}
	dst, err := cli.store(to)
	if err != nil {
		return err
	}

	recs, err := src.ListAttendance(ctx, attendance.Filter{})
	if err != nil {
		return errors.Wrapf(err, "reading %s store", from)
	}
	if len(recs) == 0 {
		cli.printf("no records to sync\n")
		return nil
	}
	if dryRun {
		cli.printf("DRY RUN: would copy %d records from %s to %s\n", len(recs), from, to)
		return nil
	}

	cli.printf("copying %d records from %s to %s...\n", len(recs), from, to)
	now := core.NowFunc().UTC()
	copied := 0
	for start := 0; start < len(recs); start += batchSize {
		end := start + batchSize
		if end > len(recs) {
			end = len(recs)
		}
		batch := make([]attendance.Record, 0, end-start)
		for _, r := range recs[start:end] {
			r.ID = 0
			if r.CreatedAt.IsZero() {
				r.CreatedAt = now
			}
			batch = append(batch, r)
		}
		if _, err = dst.AddAttendance(ctx, batch); err != nil {
			return errors.Wrapf(err, "writing %s store after %d records", to, copied)
		}
		copied += len(batch)
		cli.printf("progress: %d/%d\n", copied, len(recs))
	}
	cli.printf("sync complete: %d records copied\n", copied)
	return nil
}

func (cli *commandLine) exportCmd() *cobra.Command {
	var from, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Back up attendance records to a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.export(from, out)
		},
	}
	cmd.Flags().StringVar(&from, "from", "local", "store to read from")
	cmd.Flags().StringVar(&out, "out", "yaja_backup.json", "output file")
	return cmd
}

// export writes the records of store from to file out, keyed by random UUIDs.
func (cli *commandLine) export(from, out string) error {
	src, err := cli.store(from)
	if err != nil {
		return err
	}
	recs, err := src.ListAttendance(context.Background(), attendance.Filter{})
	if err != nil {
		return errors.Wrapf(err, "reading %s store", from)
	}
	if len(recs) == 0 {
		cli.printf("no records to export\n")
		return nil
	}

	backup := make(map[string]attendance.Record, len(recs))
	for _, r := range recs {
		backup[uuid.NewString()] = r
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding records")
	}
	if err = os.WriteFile(out, data, 0o644); err != nil {
		return errors.Wrap(err, "writing backup")
	}
	cli.printf("%d records exported to %s\n", len(recs), out)
	return nil
}

func (cli *commandLine) seedCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add sample attendance records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.seed(to)
		},
	}
	cmd.Flags().StringVar(&to, "to", "local", "store to write to")
	return cmd
}

func (cli *commandLine) seed(to string) error {
	dst, err := cli.store(to)
	if err != nil {
		return err
	}
	now := core.NowFunc().UTC()
	var recs []attendance.Record
	for _, nb := range sampleBatches {
		recs = append(recs, nb.Records(now)...)
	}
	if _, err = dst.AddAttendance(context.Background(), recs); err != nil {
		return errors.Wrapf(err, "writing %s store", to)
	}
	cli.printf("%d sample records added to %s\n", len(recs), to)
	return nil
}

func (cli *commandLine) clearCmd() *cobra.Command {
	var target string
	var confirm bool
	cmd := &cobra.Command{
		Use:   "clear --confirm",
		Short: "Delete every attendance record of a store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				cli.printf("every attendance record of the %s store will be deleted: pass --confirm to proceed\n", target)
				return errHelp
			}
			return cli.clear(target)
		},
	}
	cmd.Flags().StringVar(&target, "store", "local", "store to clear")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the deletion")
	return cmd
}

func (cli *commandLine) clear(target string) error {
	s, err := cli.store(target)
	if err != nil {
		return err
	}
	n, err := s.ClearAttendance(context.Background())
	if err != nil {
		return errors.Wrapf(err, "clearing %s store", target)
	}
	cli.printf("%d records deleted from %s\n", n, target)
	return nil
}

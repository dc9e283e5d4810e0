package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinankarali/upwork-job-api/internal/domain/job"
	"github.com/akinankarali/upwork-job-api/internal/pkg/workerpool"
	"github.com/akinankarali/upwork-job-api/internal/usecase"

	"github.com/spf13/cobra"
)

type batchResult struct {
	Query    string        `json:"query"`
	Listings []job.Listing `json:"listings"`
	Error    string        `json:"error,omitempty"`
}

func newBatchCmd(factory searchFactory) *cobra.Command {
	var (
		queries []string
		workers int
		rps     int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Run several searches with shared filters and print every result as JSON",
	}
	filters := bindFilterFlags(cmd)
	cmd.Flags().StringArrayVar(&queries, "query", nil, "search keywords, repeat for more searches")
	cmd.Flags().IntVar(&workers, "workers", 2, "searches running at the same time")
	cmd.Flags().IntVar(&rps, "rps", 1, "searches started per second, 0 for no limit")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if len(queries) == 0 {
			return errors.New("at least one --query is required")
		}
		base := filters.raw(cmd)
		if _, err := usecase.ParseFilterSet(base); err != nil {
			return err
		}

		uc, cleanup, err := factory()
		if err != nil {
			return fmt.Errorf("failed to init search: %w", err)
		}
		defer cleanup()

		out := make([]batchResult, len(queries))
		pool := workerpool.New(workers, len(queries))
		pool.SetRateLimit(rps)
		results := pool.Run(cmd.Context())

		for i, q := range queries {
			raw := usecase.RawParams{usecase.ParamQuery: q}
			for k, v := range base {
				raw[k] = v
			}
			out[i] = batchResult{Query: q, Listings: []job.Listing{}}
			pool.Submit(i, func(ctx context.Context) error {
				items, err := uc.Search(ctx, raw)
				if err != nil {
					return err
				}
				out[i].Listings = items
				return nil
			})
		}
		pool.Close()

		failed := 0
		for r := range results {
			if r.Err != nil {
				out[r.ID].Error = r.Err.Error()
				failed++
			}
		}
		if err := cmd.Context().Err(); err != nil {
			return err
		}

		if err := writeJSON(cmd, out); err != nil {
			return err
		}
		if failed == len(queries) {
			return fmt.Errorf("all %d searches failed", failed)
		}
		return nil
	}

	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/akinankarali/upwork-job-api/internal/app"
	"github.com/akinankarali/upwork-job-api/internal/config"
	"github.com/akinankarali/upwork-job-api/internal/search"
	"github.com/akinankarali/upwork-job-api/internal/usecase"

	"github.com/spf13/cobra"
)

// searchFactory builds the search service for one CLI run and returns a
// cleanup for it.
type searchFactory func() (usecase.SearchUsecase, func(), error)

func defaultSearchFactory() (usecase.SearchUsecase, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	c, err := app.NewContainer(cfg, log.New(os.Stderr, "", log.LstdFlags))
	if err != nil {
		return nil, nil, err
	}
	return c.Search, func() { _ = c.Close() }, nil
}

var filterFlagNames = map[string]string{
	"job-type":         usecase.ParamJobType,
	"experience":       usecase.ParamExperience,
	"duration":         usecase.ParamDuration,
	"rate-min":         usecase.ParamRateMin,
	"rate-max":         usecase.ParamRateMax,
	"workload":         usecase.ParamWorkload,
	"client-hires":     usecase.ParamClientHires,
	"contract-to-hire": usecase.ParamContractToHire,
}

// filterFlags binds one string flag per filter parameter. Only flags set on
// the command line reach RawParams.
type filterFlags map[string]*string

func bindFilterFlags(cmd *cobra.Command) filterFlags {
	f := filterFlags{}
	for flag, param := range filterFlagNames {
		f[flag] = cmd.Flags().String(flag, "", fmt.Sprintf("value of the %q search parameter", param))
	}
	return f
}

func (f filterFlags) raw(cmd *cobra.Command) usecase.RawParams {
	raw := usecase.RawParams{}
	for flag, param := range filterFlagNames {
		if cmd.Flags().Changed(flag) {
			raw[param] = *f[flag]
		}
	}
	return raw
}

func newSearchCmd(factory searchFactory) *cobra.Command {
	var (
		query   string
		urlOnly bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one Upwork job search and print the listings as JSON",
	}
	filters := bindFilterFlags(cmd)
	cmd.Flags().StringVar(&query, "query", "", "search keywords (default \"python\")")
	cmd.Flags().BoolVar(&urlOnly, "url-only", false, "print the compiled search URL without loading it")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		raw := filters.raw(cmd)
		if cmd.Flags().Changed("query") {
			raw[usecase.ParamQuery] = query
		}

		if urlOnly {
			fs, err := usecase.ParseFilterSet(raw)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), search.Compile(fs))
			return err
		}

		uc, cleanup, err := factory()
		if err != nil {
			return fmt.Errorf("failed to init search: %w", err)
		}
		defer cleanup()

		items, err := uc.Search(cmd.Context(), raw)
		if err != nil {
			return err
		}
		return writeJSON(cmd, items)
	}

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

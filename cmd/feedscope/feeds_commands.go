package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"feedscope/internal/api"
)

type feedFilterFlags struct {
	theater string
	minResW int
	minResH int
	minFPS  float64
	codecs  []string
}

func (f *feedFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.theater, "theater", "", "Theater code to match")
	cmd.Flags().IntVar(&f.minResW, "min-res-w", 0, "Minimum horizontal resolution")
	cmd.Flags().IntVar(&f.minResH, "min-res-h", 0, "Minimum vertical resolution")
	cmd.Flags().Float64Var(&f.minFPS, "min-fps", 0, "Minimum frame rate")
	cmd.Flags().StringSliceVar(&f.codecs, "codec", nil, "Codec names to match (repeatable)")
}

func (f *feedFilterFlags) intOrNil(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func (f *feedFilterFlags) fpsOrNil() *float64 {
	if f.minFPS <= 0 {
		return nil
	}
	return &f.minFPS
}

func newFeedsCommand(ctx *commandContext) *cobra.Command {
	feedsCmd := &cobra.Command{
		Use:   "feeds",
		Short: "List and rank catalog feeds",
	}
	feedsCmd.AddCommand(newFeedsListCommand(ctx))
	feedsCmd.AddCommand(newFeedsRankCommand(ctx))
	return feedsCmd
}

func newFeedsListCommand(ctx *commandContext) *cobra.Command {
	var filters feedFilterFlags
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List feeds matching the given filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			resp := svc.ListFeeds(api.ListFeedsRequest{
				Theater: filters.theater,
				MinResW: filters.intOrNil(filters.minResW),
				MinResH: filters.intOrNil(filters.minResH),
				MinFPS:  filters.fpsOrNil(),
				CodecIn: filters.codecs,
				Limit:   &limit,
			})

			if asJSON {
				return writeJSON(cmd, resp)
			}

			if len(resp.Feeds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No feeds match the given filters.")
				return nil
			}

			rows := make([][]string, len(resp.Feeds))
			for i, feed := range resp.Feeds {
				rows[i] = feedRow(feed)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"FEED", "THEATER", "RESOLUTION", "FPS", "CODEC"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of feeds to print (negative for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit feeds as JSON")
	return cmd
}

func newFeedsRankCommand(ctx *commandContext) *cobra.Command {
	var filters feedFilterFlags
	var topK int
	var term string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank feeds by clarity score",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}

			var weights map[string]float64
			if strings.TrimSpace(term) != "" {
				weights = svc.ExplainTerm(api.ExplainTermRequest{Phrase: term}).Weights
			}

			resp := svc.FilterAndRank(api.FilterAndRankRequest{
				Theater: filters.theater,
				MinResW: filters.intOrNil(filters.minResW),
				MinResH: filters.intOrNil(filters.minResH),
				MinFPS:  filters.fpsOrNil(),
				CodecIn: filters.codecs,
				TopK:    &topK,
				Weights: weights,
			})

			if asJSON {
				return writeJSON(cmd, resp)
			}

			if len(resp.Feeds) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No feeds match the given filters.")
				return nil
			}

			rows := make([][]string, len(resp.Feeds))
			for i, feed := range resp.Feeds {
				rows[i] = append(feedRow(feed.FeedItem), strconv.FormatFloat(feed.ClarityScore, 'f', 3, 64))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"FEED", "THEATER", "RESOLUTION", "FPS", "CODEC", "SCORE"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignRight},
			))
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVar(&topK, "top-k", 10, "Number of ranked feeds to print")
	cmd.Flags().StringVar(&term, "term", "", "Perceptual term to derive weights from (e.g. clarity, smooth)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit ranked feeds as JSON")
	return cmd
}

func feedRow(feed api.FeedItem) []string {
	resolution := "-"
	if feed.ResW != nil && feed.ResH != nil {
		resolution = fmt.Sprintf("%dx%d", *feed.ResW, *feed.ResH)
	}
	fps := "-"
	if feed.FrameRate != nil {
		fps = strconv.FormatFloat(*feed.FrameRate, 'f', -1, 64)
	}
	codec := feed.Codec
	if codec == "" {
		codec = "-"
	}
	theater := feed.Theater
	if theater == "" {
		theater = "-"
	}
	return []string{feed.FeedID, theater, resolution, fps, codec}
}

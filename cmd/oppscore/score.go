package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/johnwards/oppscore/internal/domain"
	"github.com/johnwards/oppscore/internal/recommend"
)

type scoreOutput struct {
	Scores           domain.ScoreBundle `json:"scores"`
	Suggestion       string             `json:"suggestion,omitempty"`
	GenerationFailed string             `json:"generationFailed,omitempty"`
	Prompt           string             `json:"prompt,omitempty"`
}

func newScoreCmd() *cobra.Command {
	var (
		file   string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one opportunity read from a JSON file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			opp, err := readOpportunity(in)
			if err != nil {
				return err
			}

			var gen recommend.Generator
			if !dryRun {
				cfg := configFrom(cmd.Context())
				if gen, err = recommend.NewOllamaGenerator(cfg.OllamaURL, cfg.Model); err != nil {
					return err
				}
			}

			out, err := runScore(cmd, recommend.New(gen), opp, dryRun)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "opportunity JSON file, - for stdin")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print scores and prompt without calling the model")
	return cmd
}

func runScore(cmd *cobra.Command, rec *recommend.Recommender, opp domain.Opportunity, dryRun bool) (scoreOutput, error) {
	if dryRun {
		scores, prompt, err := rec.Preview(opp)
		if err != nil {
			return scoreOutput{}, err
		}
		return scoreOutput{Scores: scores, Prompt: prompt}, nil
	}

	res, err := rec.Recommend(cmd.Context(), opp)
	if err != nil && !errors.Is(err, recommend.ErrGeneration) {
		return scoreOutput{}, err
	}
	return scoreOutput{
		Scores:           res.Scores,
		Suggestion:       res.Suggestion,
		GenerationFailed: res.FailureReason,
	}, nil
}

func readOpportunity(r io.Reader) (domain.Opportunity, error) {
	var in domain.OpportunityInput
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return domain.Opportunity{}, fmt.Errorf("decode opportunity: %w", err)
	}
	if err := in.Validate(); err != nil {
		return domain.Opportunity{}, fmt.Errorf("invalid opportunity: %w", err)
	}
	return in.Opportunity(), nil
}

// Package pipeline wires the analysis stages end to end: token load,
// vocabulary filtering, frequency aggregation, TF-IDF, the train/test split,
// matrix construction and alignment, the topic-count sweep, and artifact
// persistence.
//
// A sweep run is keyed by a fingerprint of the token input and the
// analysis configuration; when the artifact store already holds that
// fingerprint the stored curve is returned instead of recomputing.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"themescope/internal/artifacts"
	"themescope/internal/config"
	"themescope/internal/corpus"
	"themescope/internal/dtm"
	"themescope/internal/split"
	"themescope/internal/sweep"
	"themescope/internal/termfreq"
	"themescope/internal/topicmodel"
	"themescope/internal/vocab"
)

// Pipeline runs the analysis stages against one configuration.
type Pipeline struct {
	cfg    *config.Config
	store  *artifacts.Store
	fitter topicmodel.Fitter
	logger *slog.Logger
}

// New assembles a pipeline. The store may be nil, in which case sweep runs
// always recompute and nothing is persisted. A nil fitter selects the
// production LDA fitter configured from cfg.
func New(cfg *config.Config, store *artifacts.Store, fitter topicmodel.Fitter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if fitter == nil {
		fitter = topicmodel.NewLDAFitter(topicmodel.LDAConfig{
			Iterations: cfg.LDA.Iterations,
			Alpha:      cfg.LDA.Alpha,
			Eta:        cfg.LDA.Eta,
			BatchSize:  cfg.LDA.BatchSize,
			Seed:       cfg.Split.Seed,
		})
	}
	return &Pipeline{cfg: cfg, store: store, fitter: fitter, logger: logger}
}

// SweepReport is the outcome of one sweep run.
type SweepReport struct {
	RunUUID     string             `json:"run_uuid,omitempty"`
	Fingerprint string             `json:"fingerprint"`
	SelectedK   int                `json:"selected_k"`
	Curve       sweep.Curve        `json:"curve"`
	Failures    []sweep.FitFailure `json:"-"`
	FromCache   bool               `json:"from_cache"`
	TrainDocs   int                `json:"train_documents"`
	TestDocs    int                `json:"test_documents"`
	Vocabulary  int                `json:"vocabulary_size"`
}

// ComputeTfIdf loads the token stream and produces the full TF-IDF table
// under the frequency preset.
func (p *Pipeline) ComputeTfIdf(ctx context.Context, tokensPath string) ([]termfreq.Record, error) {
	tokens, err := corpus.ReadTokens(tokensPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.logger.Debug("token stream loaded",
		slog.Int("tokens", len(tokens)),
		slog.Int("documents", len(corpus.DocumentIDs(tokens))))

	filter := vocab.FrequencyPreset(p.filterOptions()...)
	counts := termfreq.Aggregate(tokens, filter)
	p.logger.Info("aggregated term counts",
		slog.Int("documents", len(counts.WordCt)),
		slog.Int("vocabulary", len(counts.Lemmas())))

	records, err := termfreq.ComputeTfIdf(counts)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// RunSweep executes the full topic-count sweep, loading a stored curve when
// the fingerprint matches a previous run.
func (p *Pipeline) RunSweep(ctx context.Context, tokensPath string) (*SweepReport, error) {
	digest, err := artifacts.DigestFile(tokensPath)
	if err != nil {
		return nil, err
	}
	configJSON, err := artifacts.ConfigJSON(p.cfg)
	if err != nil {
		return nil, err
	}
	fingerprint := artifacts.Fingerprint(digest, configJSON)

	if p.store != nil {
		if run, err := p.store.FindRun(ctx, fingerprint); err == nil {
			p.logger.Info("loaded stored curve",
				slog.String("run", run.UUID),
				slog.Int("selected_k", run.SelectedK))
			return &SweepReport{
				RunUUID:     run.UUID,
				Fingerprint: fingerprint,
				SelectedK:   run.SelectedK,
				Curve:       run.Curve,
				FromCache:   true,
			}, nil
		} else if !errors.Is(err, artifacts.ErrRunNotFound) {
			return nil, err
		}
	}

	report, err := p.computeSweep(ctx, tokensPath, fingerprint)
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		run, err := p.store.SaveRun(ctx, fingerprint, digest, configJSON, report.SelectedK, report.Curve)
		if err != nil {
			return nil, fmt.Errorf("persist curve: %w", err)
		}
		report.RunUUID = run.UUID
	}
	return report, nil
}

func (p *Pipeline) computeSweep(ctx context.Context, tokensPath, fingerprint string) (*SweepReport, error) {
	start := time.Now()
	tokens, err := corpus.ReadTokens(tokensPath)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("token stream loaded",
		slog.Int("tokens", len(tokens)),
		slog.Int("documents", len(corpus.DocumentIDs(tokens))))

	filter := vocab.MatrixPreset(p.filterOptions()...)
	counts := termfreq.Aggregate(tokens, filter)
	docs := counts.Documents()
	p.logger.Info("aggregated term counts",
		slog.Int("documents", len(docs)),
		slog.Int("vocabulary", len(counts.Lemmas())))

	partition, err := split.Partition(docs, p.cfg.Split.TestFraction, p.cfg.Split.Seed)
	if err != nil {
		return nil, err
	}

	trainMatrix, err := dtm.Build(counts, partition.Train)
	if err != nil {
		return nil, fmt.Errorf("train matrix: %w", err)
	}
	testMatrix, err := dtm.Build(counts, partition.Test)
	if err != nil {
		return nil, fmt.Errorf("test matrix: %w", err)
	}

	// The evaluator requires the vocabulary the model was trained on, so the
	// test matrix is always re-projected onto the training terms. The
	// mismatch is expected for disjoint subsets and must stay visible.
	alignedTest, mismatch := testMatrix.AlignTo(trainMatrix.Terms)
	if !mismatch.Empty() {
		p.logger.Warn("test vocabulary differs from training vocabulary",
			slog.Int("dropped_terms", len(mismatch.Dropped)),
			slog.Int("zero_filled_terms", len(mismatch.ZeroFilled)))
	}

	outcome, err := sweep.Run(ctx, p.fitter, trainMatrix.Counts(), alignedTest.Counts(), p.cfg.CandidateKs(), sweep.Options{
		Workers:    p.cfg.Sweep.Workers,
		FitTimeout: time.Duration(p.cfg.Sweep.FitTimeoutSeconds) * time.Second,
		Logger:     p.logger,
	})
	if err != nil {
		return nil, err
	}

	selected, err := sweep.SelectK(outcome.Curve)
	if err != nil {
		return nil, err
	}
	p.logger.Info("sweep complete",
		slog.Int("selected_k", selected),
		slog.Int("measured", len(outcome.Curve)),
		slog.Int("failed", len(outcome.Failures)),
		slog.Duration("elapsed", time.Since(start)))

	return &SweepReport{
		Fingerprint: fingerprint,
		SelectedK:   selected,
		Curve:       outcome.Curve,
		Failures:    outcome.Failures,
		TrainDocs:   len(trainMatrix.Docs),
		TestDocs:    len(alignedTest.Docs),
		Vocabulary:  len(trainMatrix.Terms),
	}, nil
}

func (p *Pipeline) filterOptions() []vocab.Option {
	opts := []vocab.Option{vocab.WithMinLemmaLength(p.cfg.Filter.MinLemmaLength)}
	if len(p.cfg.Filter.ExtraStopwords) > 0 {
		opts = append(opts, vocab.WithExtraStopwords(p.cfg.Filter.ExtraStopwords))
	}
	return opts
}

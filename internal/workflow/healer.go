package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"audioheal/internal/audio"
	"audioheal/internal/config"
	"audioheal/internal/logging"
	"audioheal/internal/lyrics"
	"audioheal/internal/revision"
	"audioheal/internal/services"
	"audioheal/internal/services/polly"
	"audioheal/internal/splice"
	"audioheal/internal/timecode"
)

// Synthesizer produces raw PCM for an SSML document. Satisfied by
// *polly.Client and by test fakes.
type Synthesizer interface {
	Synthesize(ctx context.Context, ssml, voice, engine string, sampleRate int) ([]byte, error)
}

// ClipCache stores synthesized PCM across runs. Satisfied by
// *clipcache.Cache.
type ClipCache interface {
	Lookup(ctx context.Context, markup, voice, engine string, sampleRate int) ([]byte, bool, error)
	Store(ctx context.Context, markup, voice, engine string, sampleRate int, pcm []byte) error
}

// Options configures a Healer.
type Options struct {
	Config      *config.Config
	Logger      *slog.Logger
	Synthesizer Synthesizer
	// Cache may be nil to disable clip reuse.
	Cache ClipCache
	// ConfirmCost, when set, is asked before any synthesis happens. A false
	// answer aborts the run without error.
	ConfirmCost func(characters int, cost float64) (bool, error)
}

// Healer runs the mispronunciation repair pipeline.
type Healer struct {
	cfg         *config.Config
	logger      *slog.Logger
	synthesizer Synthesizer
	cache       ClipCache
	confirmCost func(characters int, cost float64) (bool, error)
}

// New validates options and builds a Healer.
func New(opts Options) (*Healer, error) {
	if opts.Config == nil {
		return nil, errors.New("workflow: config is required")
	}
	if opts.Synthesizer == nil {
		return nil, errors.New("workflow: synthesizer is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Healer{
		cfg:         opts.Config,
		logger:      logging.WithComponent(logger, "heal"),
		synthesizer: opts.Synthesizer,
		cache:       opts.Cache,
		confirmCost: opts.ConfirmCost,
	}, nil
}

// Request describes one heal run.
type Request struct {
	AudioPath   string
	LyricsPath  string
	Target      string
	Replacement string
	// WordMode selects matching by word instead of by exact timestamp.
	WordMode bool
	// OutputDir overrides the configured output directory when non-empty.
	OutputDir string
}

// Outcome reports what a completed run produced.
type Outcome struct {
	AudioPath          string
	LyricsPath         string
	Corrections        int
	Characters         int
	EstimatedCost      float64
	OriginalDurationMS int
	HealedDurationMS   int
	// Aborted is set when the cost confirmation declined the run. No other
	// fields beyond Characters and EstimatedCost are meaningful then.
	Aborted bool
}

// Heal executes the pipeline. On any error no output files are written.
func (h *Healer) Heal(ctx context.Context, req Request) (*Outcome, error) {
	track, err := audio.LoadWAV(req.AudioPath)
	if err != nil {
		return nil, err
	}
	if track.SampleRate() != h.cfg.Synthesis.SampleRate {
		detail := fmt.Sprintf("%s is %d Hz, configured synthesis rate is %d Hz", req.AudioPath, track.SampleRate(), h.cfg.Synthesis.SampleRate)
		return nil, services.Wrap(services.ErrValidation, "heal", "load audio", detail, nil)
	}

	store, err := lyrics.LoadFile(req.LyricsPath)
	if err != nil {
		return nil, err
	}
	h.logger.Info("inputs loaded",
		slog.String("audio", req.AudioPath),
		slog.Int("duration_ms", track.DurationMS()),
		slog.Int("lines", store.Len()))

	selected, err := h.selectTargets(store, req)
	if err != nil {
		return nil, err
	}

	requests, err := revision.Plan(store, selected, req.Target, req.Replacement, req.WordMode)
	if err != nil {
		return nil, err
	}

	voice := h.cfg.Voice
	characters := revision.CharacterCount(requests)
	cost, err := polly.EstimateCost(characters, voice.Language, voice.Name, voice.Engine)
	if err != nil {
		return nil, err
	}
	h.logger.Info("corrections planned",
		slog.Int("targets", len(requests)),
		slog.Int("characters", characters),
		slog.Float64("estimated_cost_usd", cost))

	if h.confirmCost != nil {
		ok, err := h.confirmCost(characters, cost)
		if err != nil {
			return nil, err
		}
		if !ok {
			h.logger.Info("run aborted at cost confirmation")
			return &Outcome{Characters: characters, EstimatedCost: cost, Aborted: true}, nil
		}
	}

	locator := splice.Locator{
		Threshold:   h.cfg.Splice.SilenceThresholdDBFS,
		MinMarginMS: h.cfg.Splice.MinMarginMS,
	}
	if err := h.prepare(ctx, track, locator, requests); err != nil {
		return nil, err
	}

	targets := make([]splice.Target, 0, len(requests))
	for _, r := range requests {
		var endHalf *int
		if r.End != nil {
			half := r.End.HalfLength
			endHalf = &half
		}
		clip := locator.Align(r.ReadyToSplice, r.Start.HalfLength, endHalf)
		targets = append(targets, splice.Target{
			TimeKey:    r.Line.TimeKey,
			Start:      r.Start,
			End:        r.End,
			NominalEnd: r.EndTime,
			Clip:       clip,
		})
	}

	healed, results := splice.Run(track, targets)

	corrections := make(map[int]lyrics.Correction, len(results))
	byKey := make(map[int]*revision.Request, len(requests))
	for _, r := range requests {
		byKey[r.Line.TimeKey] = r
	}
	for _, res := range results {
		endTime := res.EndTime
		corrections[res.TimeKey] = lyrics.Correction{
			NewStart: res.NewStart,
			NewText:  byKey[res.TimeKey].NewText,
			EndTime:  &endTime,
		}
	}

	outDir := req.OutputDir
	if outDir == "" {
		outDir = h.cfg.Paths.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", outDir, err)
	}

	audioOut := filepath.Join(outDir, "new_"+filepath.Base(req.AudioPath))
	lyricsOut := filepath.Join(outDir, "new_"+filepath.Base(req.LyricsPath))

	if err := audio.SaveWAV(audioOut, healed); err != nil {
		return nil, err
	}
	if err := os.WriteFile(lyricsOut, []byte(store.Render(corrections)), 0o644); err != nil {
		// Outputs are a pair; drop the orphaned audio file.
		_ = os.Remove(audioOut)
		return nil, fmt.Errorf("write lyrics %s: %w", lyricsOut, err)
	}

	h.logger.Info("heal complete",
		slog.String("audio", audioOut),
		slog.String("lyrics", lyricsOut),
		slog.Int("healed_duration_ms", healed.DurationMS()))

	return &Outcome{
		AudioPath:          audioOut,
		LyricsPath:         lyricsOut,
		Corrections:        len(results),
		Characters:         characters,
		EstimatedCost:      cost,
		OriginalDurationMS: track.DurationMS(),
		HealedDurationMS:   healed.DurationMS(),
	}, nil
}

func (h *Healer) selectTargets(store *lyrics.Store, req Request) (map[int]*lyrics.Line, error) {
	if req.WordMode {
		selected := store.FindByWord(req.Target)
		if len(selected) == 0 {
			detail := fmt.Sprintf("no line contains %q", req.Target)
			return nil, services.Wrap(services.ErrTargetNotFound, "heal", "select", detail, nil)
		}
		return selected, nil
	}

	if !timecode.ValidTarget(req.Target) {
		detail := fmt.Sprintf("%q is not a [mm:ss.xx] timestamp", req.Target)
		return nil, services.Wrap(services.ErrValidation, "heal", "select", detail, nil)
	}
	key, err := timecode.Parse(req.Target)
	if err != nil {
		return nil, err
	}
	line, err := store.FindByTime(key)
	if err != nil {
		return nil, err
	}
	return map[int]*lyrics.Line{line.TimeKey: line}, nil
}

// prepare locates cut points and synthesizes the replacement clip for every
// request, one goroutine per target. The first error wins and the whole run
// aborts before any splicing.
func (h *Healer) prepare(ctx context.Context, track *audio.Track, locator splice.Locator, requests []*revision.Request) error {
	errs := make([]error, len(requests))
	var wg sync.WaitGroup
	for i, r := range requests {
		wg.Add(1)
		go func(i int, r *revision.Request) {
			defer wg.Done()
			errs[i] = h.prepareOne(ctx, track, locator, r)
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *Healer) prepareOne(ctx context.Context, track *audio.Track, locator splice.Locator, r *revision.Request) error {
	start, err := locator.LocateStart(track, r.Line.TimeKey)
	if err != nil {
		return err
	}
	end, err := locator.LocateEnd(track, r.EndTime)
	if err != nil {
		return err
	}

	pcm, err := h.fetchClip(ctx, r.Markup)
	if err != nil {
		return err
	}
	clip, err := audio.FromPCM(pcm, h.cfg.Synthesis.SampleRate)
	if err != nil {
		return err
	}

	r.Start = start
	r.End = end
	r.ReadyToSplice = clip
	h.logger.Debug("target prepared",
		slog.String("line", timecode.Format(r.Line.TimeKey)),
		slog.Int("clip_ms", clip.DurationMS()))
	return nil
}

func (h *Healer) fetchClip(ctx context.Context, markup string) ([]byte, error) {
	voice := h.cfg.Voice
	rate := h.cfg.Synthesis.SampleRate
	if h.cache != nil {
		pcm, ok, err := h.cache.Lookup(ctx, markup, voice.Name, voice.Engine, rate)
		if err != nil {
			return nil, err
		}
		if ok {
			h.logger.Debug("clip cache hit")
			return pcm, nil
		}
	}

	pcm, err := h.synthesizer.Synthesize(ctx, markup, voice.Name, voice.Engine, rate)
	if err != nil {
		return nil, err
	}
	if h.cache != nil {
		if err := h.cache.Store(ctx, markup, voice.Name, voice.Engine, rate, pcm); err != nil {
			h.logger.Warn("clip cache store failed", slog.Any("error", err))
		}
	}
	return pcm, nil
}

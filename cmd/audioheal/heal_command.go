package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"audioheal/internal/clipcache"
	"audioheal/internal/config"
	"audioheal/internal/logging"
	"audioheal/internal/services/polly"
	"audioheal/internal/workflow"
)

func newHealCommand(ctx *commandContext) *cobra.Command {
	var wordMode bool
	var voiceLanguage, voiceName, voiceType string
	var confirmCost bool
	var outputDir string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "heal AUDIO.wav LYRICS.lrc TARGET REPLACEMENT",
		Short: "Replace a mispronounced span and rewrite the timed lyrics",
		Long: `Heal locates TARGET in LYRICS.lrc, synthesizes REPLACEMENT with the
configured voice, splices it into AUDIO.wav at silence boundaries, and
writes new_<name> copies of both files. TARGET is an exact [mm:ss.xx]
timestamp unless --word selects matching by word.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			applyVoiceOverrides(cfg, voiceLanguage, voiceName, voiceType)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			client, err := polly.NewClient(cmd.Context(), cfg.Synthesis.Region)
			if err != nil {
				return err
			}

			var cache workflow.ClipCache
			if cfg.Cache.Enabled && !noCache {
				store, err := clipcache.Open(cfg.Paths.CacheDir)
				if err != nil {
					return err
				}
				defer store.Close()
				cache = store
			}

			opts := workflow.Options{
				Config:      cfg,
				Logger:      logger,
				Synthesizer: client,
				Cache:       cache,
			}
			if confirmCost {
				opts.ConfirmCost = costPrompt(cmd)
			}

			healer, err := workflow.New(opts)
			if err != nil {
				return err
			}

			outcome, err := healer.Heal(cmd.Context(), workflow.Request{
				AudioPath:   args[0],
				LyricsPath:  args[1],
				Target:      args[2],
				Replacement: args[3],
				WordMode:    wordMode,
				OutputDir:   outputDir,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outcome.Aborted {
				fmt.Fprintln(out, "Aborted before synthesis; no files written.")
				return nil
			}

			fmt.Fprintln(out, renderTable(
				[]string{"Output", "Path"},
				[][]string{
					{"Audio", outcome.AudioPath},
					{"Lyrics", outcome.LyricsPath},
				},
			))
			fmt.Fprintf(out, "Corrected %d line(s); %d ms -> %d ms; %d characters ($%.4f estimated)\n",
				outcome.Corrections, outcome.OriginalDurationMS, outcome.HealedDurationMS,
				outcome.Characters, outcome.EstimatedCost)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wordMode, "word", "w", false, "Treat TARGET as a word instead of a timestamp")
	cmd.Flags().StringVar(&voiceLanguage, "voice-language", "", "Voice language code (default from config)")
	cmd.Flags().StringVar(&voiceName, "voice-name", "", "Voice name (default from config)")
	cmd.Flags().StringVar(&voiceType, "voice-type", "", "Voice engine: standard, neural, long-form, generative")
	cmd.Flags().BoolVar(&confirmCost, "confirm-cost", false, "Show the synthesis cost estimate and ask before proceeding")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for healed files (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the synthesized clip cache")

	return cmd
}

func applyVoiceOverrides(cfg *config.Config, language, name, engine string) {
	if v := strings.TrimSpace(language); v != "" {
		cfg.Voice.Language = v
	}
	if v := strings.TrimSpace(name); v != "" {
		cfg.Voice.Name = v
	}
	if v := strings.TrimSpace(engine); v != "" {
		cfg.Voice.Engine = strings.ToLower(v)
	}
}

// costPrompt shows the estimate and asks for a go-ahead. Without a
// terminal on stdin there is nobody to ask, so the run proceeds.
func costPrompt(cmd *cobra.Command) func(characters int, cost float64) (bool, error) {
	return func(characters int, cost float64) (bool, error) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Submitting %d characters, estimated cost $%.4f.\n", characters, cost)

		stdin, ok := cmd.InOrStdin().(*os.File)
		if !ok || !(isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd())) {
			return true, nil
		}

		fmt.Fprint(out, "Proceed with synthesis? [y/N]: ")
		reader := bufio.NewReader(stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}

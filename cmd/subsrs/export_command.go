package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"subsrs/internal/export"
	"subsrs/internal/language"
	"subsrs/internal/media"
	"subsrs/internal/mediacache"
	"subsrs/internal/srt"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var foreignLang string
	var title string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "export <video> <foreign-subs.srt> [native-subs.srt]",
		Short: "Export an Anki-importable deck with audio and image clips",
		Long: `Export builds a CSV deck from a video and one or two subtitle tracks.
Each row carries the current subtitle in both languages, the surrounding
lines for context, an audio clip of the spoken line, and a still frame.
Rows without foreign-language text are dropped.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := ctx.ensure()
			if err != nil {
				return err
			}

			foreign, err := srt.ParseFile(args[1])
			if err != nil {
				return err
			}
			if len(foreign) == 0 {
				return fmt.Errorf("no usable cues in %s", args[1])
			}

			var native []srt.Subtitle
			if len(args) == 3 {
				native, err = srt.ParseFile(args[2])
				if err != nil {
					return err
				}
			}

			langCode := ""
			if foreignLang != "" {
				lang, err := language.Resolve(foreignLang)
				if err != nil {
					return err
				}
				langCode = lang.Code
				log.Debug("resolved foreign language",
					slog.String("code", lang.Code),
					slog.String("name", lang.Name))
			}

			var cache *mediacache.Store
			if !noCache {
				cache, err = mediacache.Open(cmd.Context(), cfg.Paths.CacheDB)
				if err != nil {
					// The cache only saves time; a broken one should not
					// block the export.
					log.Warn("media cache unavailable", slog.Any("error", err))
				} else {
					defer cache.Close()
				}
			}

			exp, err := media.New(cmd.Context(), media.Options{
				VideoPath:       args[0],
				ForeignSubs:     foreign,
				NativeSubs:      native,
				ForeignLanguage: langCode,
				Title:           title,
				OutputDir:       outDir,
				Config:          cfg,
				Logger:          log,
				Cache:           cache,
			})
			if err != nil {
				return err
			}
			defer exp.Close()

			if err := export.WriteDeck(exp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deck written to %s\n", export.DeckFileName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().StringVarP(&foreignLang, "foreign-lang", "l", "", "Language of the foreign track (code or name)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Deck source title (default: video file stem)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Re-extract media even when cached")

	return cmd
}

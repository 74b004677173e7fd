package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subsrs/internal/media"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracks <video>",
		Short: "List the streams of a video container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := ctx.ensure()
			if err != nil {
				return err
			}

			probe, err := media.Probe(cmd.Context(), media.ExecRunner{}, cfg.Tools.FFprobe, args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(probe.Streams))
			for _, stream := range probe.Streams {
				detail := ""
				switch stream.CodecType {
				case "video":
					detail = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
				case "audio":
					detail = fmt.Sprintf("%s Hz, %d ch", stream.SampleRate, stream.Channels)
				}
				rows = append(rows, []string{
					strconv.Itoa(stream.Index),
					stream.CodecType,
					stream.CodecName,
					stream.Language(),
					detail,
				})
			}

			headers := []string{"#", "Type", "Codec", "Lang", "Detail"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignRight}))
			if probe.DurationSeconds() > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Duration: %.1fs\n", probe.DurationSeconds())
			}
			return nil
		},
	}
	return cmd
}

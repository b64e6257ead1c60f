package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smazurov/lighthal/internal/hw"
)

// CreateProbeCmd creates the probe command. paths is resolved when the
// command runs, after configuration has been loaded.
func CreateProbeCmd(paths func() hw.Paths) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Check the LED, backlight and battery files",
		Long:  `Checks that every LED and backlight control file can be opened for writing and that the battery status files can be read. Nothing is written.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results := hw.Probe(paths())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROLE\tPATH\tSTATUS\tVALUE")
			for _, r := range results {
				status := "ok"
				if !r.OK() {
					status = r.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Name, r.Path, status, r.Value)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if err := hw.ProbeErr(results); err != nil {
				cmd.SilenceUsage = true
				return fmt.Errorf("probe failed: %w", err)
			}
			return nil
		},
	}
}

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smazurov/lighthal/internal/lights"
)

// CreateSetCmd creates the one-shot set command.
func CreateSetCmd(device func() *lights.Device) *cobra.Command {
	validArgs := make([]string, len(lights.IDs))
	for i, id := range lights.IDs {
		validArgs[i] = string(id)
	}

	c := &cobra.Command{
		Use:       "set <light> <color>",
		Short:     "Set one light and exit",
		Long:      `Sets a logical light (backlight, buttons, battery, notifications, attention) to a color given as #RRGGBB or #AARRGGBB. Only the red channel decides whether an indicator source is on; the backlight uses the channel average. Arbitration starts from an empty state.`,
		Example:   "  lighthal set notifications '#ff0000'\n  lighthal set backlight '#808080'",
		Args:      cobra.ExactArgs(2),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			color, err := lights.ParseColor(args[1])
			if err != nil {
				return err
			}
			state := lights.State{Color: color}

			err = device().Set(lights.ID(args[0]), state)
			code := lights.Code(err)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s code=%d\n", args[0], state.Hex(), code)

			strict, _ := cmd.Flags().GetBool("strict")
			if err != nil && (strict || errors.Is(err, lights.ErrUnknownLight)) {
				return err
			}
			return nil
		},
	}
	c.Flags().Bool("strict", false, "Exit non-zero when a hardware write fails")
	return c
}

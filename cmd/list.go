package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"todaygenda.com/todaygenda/internal/display"
	"todaygenda.com/todaygenda/internal/services"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show today's list",
	Args:  cobra.NoArgs,
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		now := time.Now()
		_, list, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}

		agenda := services.BuildAgenda(list, now)
		fmt.Fprintln(cmd.OutOrStdout(), display.RenderList(list, agenda, now, time.Local))
		return nil
	}),
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Show when each pending task should start and end",
	Args:  cobra.NoArgs,
	RunE: withSchema(func(cmd *cobra.Command, args []string, a *app) error {
		now := time.Now()
		_, list, err := a.today(cmd.Context(), now)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), display.RenderAgenda(services.BuildAgenda(list, now), time.Local))
		return nil
	}),
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.migrate(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "database schema is up to date")
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(showCmd, agendaCmd, migrateCmd)
}

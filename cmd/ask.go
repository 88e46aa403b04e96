package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askDev bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askDev, "dev", false,
		"use an in-memory record store instead of PostgreSQL")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	app, err := setup(ctx, askDev, nil)
	if err != nil {
		return err
	}
	defer app.close()

	question := strings.Join(args, " ")
	reply, err := app.engine.HandleQuery(ctx, question)
	if err != nil {
		return fmt.Errorf("handling query: %w", err)
	}

	fmt.Println(reply)
	return nil
}

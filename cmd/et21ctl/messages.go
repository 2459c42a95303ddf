package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

const previewLen = 60

func newMessagesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read contact form submissions",
	}
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the newest contact messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.messagesList(cmd, limit)
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "how many messages to print (max 500)")
	cmd.AddCommand(list)
	return cmd
}

func (a *app) messagesList(cmd *cobra.Command, limit int) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
	defer cancel()
	s, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	msgs, err := s.ListMessages(ctx, limit)
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFECHA\tNOMBRE\tEMAIL\tMENSAJE")
	for _, m := range msgs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			m.ID, m.CreatedAt.UTC().Format("2006-01-02 15:04"), m.Name, m.Email, preview(m.Body))
	}
	return tw.Flush()
}

// preview flattens a message onto one line and cuts it to previewLen runes.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= previewLen {
		return s
	}
	return string(r[:previewLen-1]) + "…"
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
			defer cancel()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %s schema up to date\n", a.cfg.Database.Driver)
			return nil
		},
	}
}

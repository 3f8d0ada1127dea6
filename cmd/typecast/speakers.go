package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/typecast/internal/chatlog"
)

func newSpeakersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speakers <chat-log>",
		Short: "List the speakers a chat log would offer for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range t.Speakers() {
				fmt.Fprintf(out, "%s\t%d\n", name, t.Count(name))
			}
			return nil
		},
	}
}

func parseFile(path string) (*chatlog.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	t, err := chatlog.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if t.Empty() {
		return nil, fmt.Errorf("%s: no speaker has at least %d messages", path, chatlog.MinMessages)
	}
	return t, nil
}

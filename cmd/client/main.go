package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serverAddr string

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := &cobra.Command{
		Use:           "notectl",
		Short:         "CLI client for the syncnote server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&serverAddr, "addr", "localhost:8081", "server host:port")

	root.AddCommand(
		newCreateCmd(),
		newListCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newRetitleCmd(),
		newWatchCmd(),
		newEditCmd(),
	)

	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("notectl: %v", err)
	}
}

func newCreateCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new note",
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, err := apiCreateNote(cmd.Context(), title)
			if err != nil {
				return err
			}

			printNote(note)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.MarkFlagRequired("title")

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all notes, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			notes, err := apiListNotes(cmd.Context())
			if err != nil {
				return err
			}

			for _, note := range notes {
				fmt.Printf("%s  %s  %s\n", note.ID, note.CreatedAt, note.Title)
			}
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <note-id>",
		Short: "Fetch one note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := apiGetNote(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printNote(note)
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiDeleteNote(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Println("deleted", args[0])
			return nil
		},
	}
}

func newRetitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retitle <note-id> <title>",
		Short: "Change a note's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := apiUpdateTitle(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			printNote(note)
			return nil
		},
	}
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <note-id>",
		Short: "Stream live updates for a note until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return watchNote(cmd.Context(), args[0], os.Stdout)
		},
	}
}

func newEditCmd() *cobra.Command {
	var content string

	cmd := &cobra.Command{
		Use:   "edit <note-id>",
		Short: "Push new content over the realtime channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := editNote(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}

			printNote(note)
			return nil
		},
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().StringVar(&content, "content", "", "new note content")
	cmd.MarkFlagRequired("content")

	return cmd
}

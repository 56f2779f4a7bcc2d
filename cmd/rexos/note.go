package rexos

import (
	"bufio"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Write and read daily notes",
}

var (
	noteDate   string
	noteAppend bool
	noteLimit  int
)

var noteSetCmd = &cobra.Command{
	Use:   "set <text>",
	Short: "Replace the note of a date",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(noteDate)
		if err != nil {
			return err
		}
		content := strings.Join(args, " ")
		return withStore(cmd, func(s *session) error {
			note := model.DailyNote{Date: date, Content: content, UpdatedAt: nowRFC3339()}
			if _, err := s.dispatch(cmd, store.LogNote{Note: note}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s\n", date)
			return nil
		})
	},
}

var noteWriteCmd = &cobra.Command{
	Use:   "write",
	Short: "Type a note line by line; it autosaves after a pause and on EOF",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(noteDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			saver := service.NewNoteAutosaver(s.store, s.cfg.NoteDebounce.Duration, s.logger)

			var b strings.Builder
			if noteAppend {
				if existing, ok := s.store.State().NoteFor(date); ok && existing.Content != "" {
					b.WriteString(existing.Content)
				}
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(scanner.Text())
				saver.Edit(date, b.String())
				if cmd.Context().Err() != nil {
					break
				}
			}
			scanErr := scanner.Err()
			if err := saver.Close(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: note was not saved: %v\n", err)
			}
			if scanErr != nil {
				return fmt.Errorf("read note input: %w", scanErr)
			}
			if saver.Saves() == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to save for %s\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved note for %s (%d autosave(s))\n", date, saver.Saves())
			return nil
		})
	},
}

var noteShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the note of a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(noteDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			note, ok := s.store.State().NoteFor(date)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No note for %s.\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (updated %s)\n%s\n", note.Date, note.UpdatedAt, note.Content)
			return nil
		})
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if noteLimit <= 0 {
			return fmt.Errorf("--limit must be > 0")
		}
		return withStore(cmd, func(s *session) error {
			notes := s.store.State().Notes
			sort.SliceStable(notes, func(i, j int) bool { return notes[i].Date > notes[j].Date })
			if len(notes) > noteLimit {
				notes = notes[:noteLimit]
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DATE\tPREVIEW")
			for _, n := range notes {
				preview := strings.ReplaceAll(service.Preview(n.Content, 60), "\n", " ")
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", n.Date, preview)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteSetCmd, noteWriteCmd, noteShowCmd, noteListCmd)

	for _, c := range []*cobra.Command{noteSetCmd, noteWriteCmd, noteShowCmd} {
		c.Flags().StringVar(&noteDate, "date", "", "Date (YYYY-MM-DD, default today)")
	}
	noteWriteCmd.Flags().BoolVar(&noteAppend, "append", false, "Append to the existing note instead of replacing it")
	noteListCmd.Flags().IntVar(&noteLimit, "limit", 30, "Maximum notes to list")
}

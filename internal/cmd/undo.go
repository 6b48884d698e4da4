package cmd

import (
	"fmt"
	"os"

	"github.com/Digital-Shane/library-tidy/internal/log"
	"github.com/spf13/cobra"
)

var undoSessionPath string

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Reverse the most recent run",
	Long: `undo replays the latest operation journal in reverse: moved files are
moved back, copies are removed, and created directories are removed when
empty. A specific journal file can be replayed with --session.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	undoCmd.Flags().StringVar(&undoSessionPath, "session", "", "journal file to undo instead of the latest")
	rootCmd.AddCommand(undoCmd)
}

func runUndo(cmd *cobra.Command, args []string) error {
	var session *log.LogSession
	var err error
	if undoSessionPath != "" {
		session, err = log.ReadSession(undoSessionPath)
	} else {
		session, err = log.FindLatestSession()
	}
	if err != nil {
		return err
	}

	fmt.Printf("Undoing session %s (%d operations)\n",
		session.Metadata.SessionID, session.Metadata.TotalOps)

	successful, failed, errors := log.UndoSession(session)

	fmt.Printf("Reversed %d operations, %d failed\n", successful, failed)
	for _, err := range errors {
		fmt.Fprintf(os.Stderr, "  %v\n", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d operations could not be reversed", failed)
	}
	return nil
}

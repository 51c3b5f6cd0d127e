package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var materialsCmd = &cobra.Command{
	Use:   "materials",
	Short: "Manage imported study materials",
}

var materialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported materials",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		mats, err := st.Materials().Materials(context.Background())
		if err != nil {
			return fmt.Errorf("list materials: %w", err)
		}
		if len(mats) == 0 {
			fmt.Println("No materials imported yet.")
			return nil
		}

		fmt.Printf("%-36s  %-30s  %-4s  %s\n", "ID", "Title", "Lang", "Entries")
		fmt.Println(strings.Repeat("─", 84))
		for _, m := range mats {
			entries := len(m.Concepts) + len(m.Flashcards) + len(m.Glossary)
			title := m.Title
			if len(title) > 30 {
				title = title[:29] + "…"
			}
			fmt.Printf("%-36s  %-30s  %-4s  %d\n", m.ID, title, m.Language, entries)
		}
		return nil
	},
}

var materialsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a material and its mistake history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := st.Materials().Delete(context.Background(), args[0]); err != nil {
			return fmt.Errorf("delete material: %w", err)
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

func init() {
	materialsCmd.AddCommand(materialsListCmd)
	materialsCmd.AddCommand(materialsDeleteCmd)
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "Show the words you keep getting wrong",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rows, err := st.Mistakes().List(context.Background())
		if err != nil {
			return fmt.Errorf("list mistakes: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No mistakes recorded. Either you're brilliant or you haven't played.")
			return nil
		}

		fmt.Printf("%-20s  %-6s  %s\n", "Term", "Misses", "Definition")
		fmt.Println(strings.Repeat("─", 72))
		for _, m := range rows {
			def := m.Definition
			if len(def) > 42 {
				def = def[:41] + "…"
			}
			fmt.Printf("%-20s  %-6d  %s\n", m.Term, m.MissCount, def)
		}
		return nil
	},
}

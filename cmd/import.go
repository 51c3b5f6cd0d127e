package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evalund/glosor/internal/material"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a study material from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		var f material.ImportFile
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		if err := f.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		m := &material.Material{
			Title:      f.Title,
			Content:    f.Content,
			Language:   f.EffectiveLanguage(),
			Concepts:   f.Concepts,
			Flashcards: f.Flashcards,
			Glossary:   f.Glossary,
		}
		if err := st.Materials().Save(context.Background(), m); err != nil {
			return fmt.Errorf("save material: %w", err)
		}

		entries := len(m.Concepts) + len(m.Flashcards) + len(m.Glossary)
		fmt.Printf("Imported %q (%s, %d entries) as %s\n", m.Title, m.Language, entries, m.ID)
		return nil
	},
}

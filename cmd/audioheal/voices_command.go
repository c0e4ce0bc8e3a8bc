package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audioheal/internal/services/polly"
)

func newVoicesCommand() *cobra.Command {
	var languageFilter string

	cmd := &cobra.Command{
		Use:         "voices",
		Short:       "List available voices and per-engine pricing",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := strings.TrimSpace(languageFilter)
			if filter != "" {
				if _, ok := polly.Catalog[filter]; !ok {
					return fmt.Errorf("unknown language %q; known: %s", filter, strings.Join(polly.Languages(), ", "))
				}
			}

			headers := []string{"Language", "Voice", "Gender"}
			for _, engine := range polly.Engines {
				headers = append(headers, engine)
			}

			var rows [][]string
			for _, language := range polly.Languages() {
				if filter != "" && language != filter {
					continue
				}
				for _, voice := range polly.Catalog[language] {
					row := []string{language, voice.Name, voice.Gender}
					for _, engine := range polly.Engines {
						if rate, ok := voice.Rates[engine]; ok {
							row = append(row, fmt.Sprintf("$%.2f", rate))
						} else {
							row = append(row, "-")
						}
					}
					rows = append(rows, row)
				}
			}

			// Price columns follow the three identity columns.
			priceColumns := make([]int, 0, len(polly.Engines))
			for i := range polly.Engines {
				priceColumns = append(priceColumns, 3+i)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, priceColumns...))
			fmt.Fprintln(out, "Prices are USD per million characters.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFilter, "language", "l", "", "Only show voices for this language code")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/docsmith/internal/config"
	"github.com/example/docsmith/internal/faq"
)

type faqOptions struct {
	File   string
	Output string
}

func newFAQCommand(a *app) *cobra.Command {
	var opts faqOptions

	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Render an FAQ markdown file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runFAQ(a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "YAML FAQ definition (default: built-in entries)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output markdown file (default \"faq.md\")")

	return cmd
}

func runFAQ(a *app, opts faqOptions) error {
	file := config.Merge(opts.File, a.cfg.FAQ.File)
	output := config.Merge(opts.Output, config.Merge(a.cfg.FAQ.Output, "faq.md"))

	doc := faq.Default()
	if file != "" {
		loaded, err := faq.Load(file)
		if err != nil {
			return err
		}
		doc = loaded
	}

	if err := doc.WriteFile(output); err != nil {
		return err
	}
	fmt.Printf("FAQ written: %s (%d entries)\n", output, len(doc.Entries))
	return nil
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pserrors "github.com/patseek/patseek/internal/errors"
	"github.com/patseek/patseek/internal/search"
	"github.com/patseek/patseek/internal/tui"
	"github.com/patseek/patseek/internal/validation"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run one query against the built index",
	Long: `Run a single query and print the ranked result block.

Query modifiers:
  [AND] / [A]        all terms must match
  [PHRASE] / [P]     exact substring match on TITLE
  [VERBOSE] / [V]    print highlighted snippets
  [FIELD=T|A|C]      restrict scoring to the listed fields

Examples:
  patseek search "quantum radar"
  patseek search "[AND] quantum key"
  patseek search "[V][FIELD=T] semiconductor"
  patseek search --interactive "quantum"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		cleaned, err := validation.ValidateQuery(query)
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			validLimit, err := validation.ValidateLimit(limit)
			if err != nil {
				return err
			}
			cfg.TopK = validLimit
		}

		log := newLogger(cmd, cfg)
		defer log.Sync()

		ix, err := openIndex(cfg)
		if err != nil {
			return err
		}
		defer ix.Close()

		searcher := search.NewSearcher(ix, log, cfg.TopK)
		out, err := searcher.Search(cleaned)
		if err != nil {
			fmt.Println(pserrors.GetUserFriendlyMessage(err))
			if _, ok := err.(*pserrors.QueryError); ok {
				return nil
			}
			return err
		}

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			return tui.Run(cleaned, out.Results)
		}

		searcher.Render(os.Stdout, out)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntP("limit", "l", 0, "Maximum number of results to display (default: 5)")
	searchCmd.Flags().Bool("interactive", false, "Browse results in the terminal UI")
}

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	pserrors "github.com/patseek/patseek/internal/errors"
	"github.com/patseek/patseek/internal/index"
	"github.com/patseek/patseek/internal/search"
	"github.com/patseek/patseek/internal/validation"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive index/search session",
	Long: `Prompt for a task (index or search), then run it interactively.
In search mode each line is one query; an empty line ends the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cmd, cfg)
		defer log.Sync()

		reader := bufio.NewReader(os.Stdin)

		fmt.Print("작업을 선택하세요 (index/search): ")
		task, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}

		switch strings.ToLower(strings.TrimSpace(task)) {
		case "index", "i":
			b := index.NewBuilder(log)
			if err := b.BuildFromDir(cfg.CorpusDir); err != nil {
				return err
			}
			if err := b.Commit(cfg.DocTablePath(), cfg.TermDictPath(), cfg.PostingsPath()); err != nil {
				return err
			}
			fmt.Printf("인덱싱 완료: 총 %d개 파일 처리 (건너뜀 %d개)\n", b.NumDocs(), b.Skipped())
			return nil

		case "search", "s":
			ix, err := openIndex(cfg)
			if err != nil {
				return err
			}
			defer ix.Close()
			return searchLoop(reader, search.NewSearcher(ix, log, cfg.TopK))

		default:
			fmt.Println("index 또는 search를 입력하세요.")
			return nil
		}
	},
}

// searchLoop consumes one query per line until an empty line.
func searchLoop(reader *bufio.Reader, searcher *search.Searcher) error {
	for {
		fmt.Print("검색어를 입력하세요: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}

		cleaned, err := validation.ValidateQuery(line)
		if err != nil {
			fmt.Println(pserrors.GetUserFriendlyMessage(err))
			continue
		}

		out, err := searcher.Search(cleaned)
		if err != nil {
			fmt.Println(pserrors.GetUserFriendlyMessage(err))
			if _, ok := err.(*pserrors.QueryError); ok {
				continue
			}
			return err
		}
		searcher.Render(os.Stdout, out)
	}
}

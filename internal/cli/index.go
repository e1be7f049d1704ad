package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/patseek/patseek/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index [corpus-dir]",
	Short: "Build the index artifacts from a corpus directory",
	Long: `Walk a directory of patent JSON documents and build the three index
artifacts: doc_table.json, term_dict.json and postings.bin.

Examples:
  patseek index ./corpus
  patseek index --index-dir /data/index ./corpus`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			cfg.CorpusDir = args[0]
		}

		log := newLogger(cmd, cfg)
		defer log.Sync()

		start := time.Now()
		b := index.NewBuilder(log)
		if err := b.BuildFromDir(cfg.CorpusDir); err != nil {
			return err
		}
		if err := b.Commit(cfg.DocTablePath(), cfg.TermDictPath(), cfg.PostingsPath()); err != nil {
			return err
		}

		log.Info("indexing finished",
			zap.Int("documents", b.NumDocs()),
			zap.Int("skipped", b.Skipped()),
			zap.Duration("took", time.Since(start)),
		)
		fmt.Printf("인덱싱 완료: 총 %d개 파일 처리 (건너뜀 %d개)\n", b.NumDocs(), b.Skipped())
		return nil
	},
}

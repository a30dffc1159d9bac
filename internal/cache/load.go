package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/dnatraits/internal/duckdb"
	"github.com/inodb/dnatraits/internal/genome"
	"github.com/inodb/dnatraits/internal/parser"
)

// LoadOrParse returns the genome for the export at src, from the cache when
// a valid entry exists and by parsing otherwise. A fresh parse is written
// back to the cache. Cache problems never fail the call; they are logged
// and the text export is parsed instead. hit reports whether the cache
// served the genome.
func (c *GenomeCache) LoadOrParse(src string, opts parser.Options) (g *genome.Genome, hit bool, err error) {
	fp, err := duckdb.StatFile(src)
	if err != nil {
		return nil, false, fmt.Errorf("open genome file: %w", err)
	}

	if c.Valid(fp, opts) {
		g, ok, err := c.Load(src)
		switch {
		case err != nil:
			c.logger.Warn("reading genome cache failed", zap.String("source", src), zap.Error(err))
		case !ok:
			c.logger.Warn("discarding unusable genome cache", zap.String("path", c.Path(src)))
			c.Clear(src)
		default:
			c.logger.Debug("loaded genome from cache",
				zap.String("source", src),
				zap.String("path", c.Path(src)),
				zap.Int("snps", g.Len()))
			return g, true, nil
		}
	} else {
		c.logger.Debug("genome cache miss", zap.String("source", src))
	}

	if opts.Logger == nil {
		opts.Logger = c.logger
	}
	g, _, err = parser.ParseFile(src, opts)
	if err != nil {
		return nil, false, err
	}

	if err := c.Write(fp, opts, g); err != nil {
		c.logger.Warn("writing genome cache failed", zap.String("source", src), zap.Error(err))
	}
	return g, false, nil
}

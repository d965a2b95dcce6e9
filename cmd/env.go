package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/scrape-cli/internal/classify"
	"github.com/sells-group/scrape-cli/internal/config"
	"github.com/sells-group/scrape-cli/internal/discovery"
	"github.com/sells-group/scrape-cli/internal/extract"
	"github.com/sells-group/scrape-cli/internal/media"
	"github.com/sells-group/scrape-cli/internal/registry"
	"github.com/sells-group/scrape-cli/internal/scrape"
	"github.com/sells-group/scrape-cli/internal/store"
	"github.com/sells-group/scrape-cli/internal/workflow"
	anthropicpkg "github.com/sells-group/scrape-cli/pkg/anthropic"
	"github.com/sells-group/scrape-cli/pkg/crossref"
	"github.com/sells-group/scrape-cli/pkg/fetch"
	"github.com/sells-group/scrape-cli/pkg/jina"
	"github.com/sells-group/scrape-cli/pkg/oembed"
	"github.com/sells-group/scrape-cli/pkg/openalex"
)

// runEnv holds the initialized store and workflow engine shared by the
// run/batch/serve commands.
type runEnv struct {
	Store  store.Store
	Engine *workflow.Engine
}

// Close releases resources held by the environment.
func (re *runEnv) Close() {
	if re.Store != nil {
		_ = re.Store.Close()
	}
}

func initStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "scrape.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initEnv sets up the store, all API clients, and the workflow engine.
// Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*runEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	fetchClient := fetch.NewClient(
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithRateLimit(cfg.Fetch.RatePerSec, int(cfg.Fetch.RatePerSec)),
		fetch.WithMaxBodySize(int64(cfg.Fetch.MaxBodyMB)<<20),
	)
	anthropicClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
	openalexClient := openalex.NewClient(
		openalex.WithBaseURL(cfg.OpenAlex.BaseURL),
		openalex.WithMailto(cfg.OpenAlex.Mailto),
	)
	crossrefClient := crossref.NewClient(
		crossref.WithBaseURL(cfg.Crossref.BaseURL),
		crossref.WithMailto(cfg.Crossref.Mailto),
	)
	oembedClient := oembed.NewClient()

	// Fetch chain: direct HTTP/FTP primary, Jina Reader fallback when
	// configured.
	scrapers := []scrape.Scraper{scrape.NewDirectScraper(fetchClient)}
	if cfg.Jina.Key != "" {
		jinaClient := jina.NewClient(cfg.Jina.Key, jina.WithBaseURL(cfg.Jina.BaseURL))
		scrapers = append(scrapers, scrape.NewReaderScraper(jinaClient))
		zap.L().Info("jina reader fallback enabled")
	}
	chain := scrape.NewChain(scrapers...)

	pdf := extract.NewPdfToText(cfg.Extract.PdfToTextPath)

	deps := &workflow.Collaborators{
		Fetch:      chain,
		Classifier: classify.New(classify.WithLLM(anthropicClient, cfg.Anthropic.Model)),
		Registries: []workflow.RegistryService{
			registry.NewOpenAlex(openalexClient),
			registry.NewCrossref(crossrefClient),
		},
		Video:     media.NewVideo(oembedClient),
		Article:   extract.NewArticleExtractor(),
		Document:  extract.NewDocumentExtractor(pdf),
		Discovery: discovery.NewLinkDiscoverer(anthropicClient, cfg.Anthropic.Model),
	}

	return &runEnv{
		Store:  st,
		Engine: workflow.New(deps),
	}, nil
}

package router

import (
	"github.com/oksasatya/heart-api/internal/application"
	"github.com/oksasatya/heart-api/internal/container"
	"github.com/oksasatya/heart-api/internal/infrastructure/external"
	pginfra "github.com/oksasatya/heart-api/internal/infrastructure/postgres"
	"github.com/oksasatya/heart-api/internal/infrastructure/search"
	handlers "github.com/oksasatya/heart-api/internal/interface/http"
	"github.com/oksasatya/heart-api/internal/interface/middleware"
	"github.com/oksasatya/heart-api/internal/metrics"
	"github.com/oksasatya/heart-api/internal/router/modules"
	"github.com/oksasatya/heart-api/pkg/helpers"
	"github.com/oksasatya/heart-api/pkg/mailer"
)

// Services groups the use cases built from the container.
type Services struct {
	Auth    *application.AuthService
	Topics  *application.TopicService
	Entries *application.EntryService
	Drafts  *application.DraftService
	Export  *application.ExportService
	Tools   *application.ToolService
	Search  *application.SearchService
}

// Optional collaborators are returned as untyped nil interfaces when their
// client is missing, so services can test them against nil.

func contentIndex() application.ContentIndexer {
	es := container.GetES()
	if es == nil {
		return nil
	}
	return search.NewIndexer(es, container.GetConfig().ESContentIndex, container.GetLogger())
}

func exportUploader() application.Uploader {
	gcs, bucket := container.GetGCS(), container.GetConfig().GCSBucket
	if gcs == nil || bucket == "" {
		return nil
	}
	return helpers.NewGCSUploader(gcs, bucket)
}

func welcomeNotifier() application.WelcomeNotifier {
	cfg, pub := container.GetConfig(), container.GetRabbitPub()
	if pub == nil || !cfg.MailSendEnabled {
		return nil
	}
	return &mailer.WelcomeNotifier{Pub: pub, AppName: cfg.AppName, SupportURL: cfg.SupportURL}
}

func grammarCache() application.ResultCache {
	rdb := container.GetRedis()
	if rdb == nil {
		return nil
	}
	return helpers.NewRedisJSONCache(rdb, "grammar:", container.GetConfig().GrammarCacheTTL)
}

// BuildServices wires repositories and adapters into the use cases.
func BuildServices() Services {
	cfg, log, pool := container.GetConfig(), container.GetLogger(), container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	topicRepo := pginfra.NewTopicRepository(pool)
	entryRepo := pginfra.NewEntryRepository(pool)
	draftRepo := pginfra.NewDraftRepository(pool)
	index := contentIndex()

	tools := application.NewToolService(
		external.NewRewriter(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.ToolsHTTPTimeout),
		external.NewLanguageTool(cfg.LanguageToolURL, cfg.LanguageToolAPIKey, cfg.ToolsHTTPTimeout),
		external.NewDetector(cfg.GPTZeroURL, cfg.GPTZeroAPIKey, cfg.ToolsHTTPTimeout),
		external.PlaceholderResearch{},
		log,
	)
	tools.Cache = grammarCache()
	tools.Recorder = metrics.Recorder{}

	return Services{
		Auth:    application.NewAuthService(userRepo, container.GetJWT(), welcomeNotifier(), log),
		Topics:  application.NewTopicService(topicRepo, log),
		Entries: application.NewEntryService(entryRepo, index, log),
		Drafts:  application.NewDraftService(draftRepo, index, log),
		Export:  application.NewExportService(draftRepo, exportUploader(), log),
		Tools:   tools,
		Search:  application.NewSearchService(index),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	InitModulesWith(r, BuildServices())
}

// InitModulesWith registers the route modules for the given services.
func InitModulesWith(r *Registry, svc Services) {
	cfg, log := container.GetConfig(), container.GetLogger()
	jwt, rdb := container.GetJWT(), container.GetRedis()
	debug := !cfg.IsProduction()
	allow := middleware.AllowPrefixes(cfg.RateLimitExempt())

	auth := modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, log, debug), jwt, rdb)
	auth.Allow = allow
	r.Add(auth)
	r.Add(modules.NewTopicModule(handlers.NewTopicHandler(svc.Topics, svc.Entries, log, debug), jwt))
	r.Add(modules.NewDraftModule(handlers.NewDraftHandler(svc.Drafts, svc.Export, log, debug), jwt))
	tools := modules.NewToolModule(handlers.NewToolHandler(svc.Tools, log, debug), jwt, rdb)
	tools.Allow = allow
	r.Add(tools)
	r.Add(modules.NewSearchModule(handlers.NewSearchHandler(svc.Search, log, debug), jwt))
	if cfg.DebugMetricsEnabled {
		dbg := modules.NewDebugModule(rdb)
		dbg.Allow = allow
		r.Add(dbg)
	}
}

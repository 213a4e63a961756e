// Package bot assembles the exchange bot: repositories, the dialogue
// engine, command and callback wiring, and the runtime hooks that bind it
// all to the Telegram transport.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/bootstrap"
	"github.com/xuelxng/exchange-bot/core/cmd"
	coretelegram "github.com/xuelxng/exchange-bot/core/telegram"
	"github.com/xuelxng/exchange-bot/core/telegram/helpers"
	"github.com/xuelxng/exchange-bot/core/telegram/middleware"
	"github.com/xuelxng/exchange-bot/core/telegram/router"
	"github.com/xuelxng/exchange-bot/core/telegram/state"
	appconfig "github.com/xuelxng/exchange-bot/internal/config"
	"github.com/xuelxng/exchange-bot/internal/flows"
	"github.com/xuelxng/exchange-bot/internal/repository"
	"github.com/xuelxng/exchange-bot/internal/seed"
	"github.com/xuelxng/exchange-bot/internal/texts"
)

const (
	seedTimeout       = 30 * time.Second
	throttleNoticeTTL = 5 * time.Second
)

// App is the assembled application.
type App struct {
	cfg   *appconfig.Config
	infra *bootstrap.Infra

	users      *repository.Users
	currencies *repository.Currencies
	pairs      *repository.Pairs
	categories *repository.Categories
	appConfigs *repository.AppConfigs

	resolver  *texts.Resolver
	states    state.Manager
	transport *teleTransport
	engine    *flows.Engine
	registry  *coretelegram.Registry
}

// LoadConfig adapts the app config loader to the shared runner.
func LoadConfig(path string) (cmd.ConfigCarrier, error) {
	return appconfig.Load(path)
}

// Bootstrap brings up infrastructure, seeds reference data, and assembles
// the application.
func Bootstrap(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
	cfg, ok := carrier.(*appconfig.Config)
	if !ok {
		return nil, fmt.Errorf("bot: unexpected config type %T", carrier)
	}

	infra, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()
	if err := seed.Run(ctx, infra.DB); err != nil {
		_ = infra.Close()
		return nil, fmt.Errorf("bot: seeding failed: %w", err)
	}

	return New(cfg, infra), nil
}

// New assembles an App on already-initialized infrastructure.
func New(cfg *appconfig.Config, infra *bootstrap.Infra) *App {
	app := &App{
		cfg:        cfg,
		infra:      infra,
		users:      repository.NewUsers(infra.DB),
		currencies: repository.NewCurrencies(infra.DB),
		pairs:      repository.NewPairs(infra.DB),
		categories: repository.NewCategories(infra.DB),
		appConfigs: repository.NewAppConfigs(infra.DB),
		states:     buildStates(cfg),
		transport:  newTeleTransport(),
		registry:   coretelegram.NewRegistry(),
	}
	app.resolver = texts.NewResolver(repository.NewTexts(infra.DB))
	app.engine = flows.NewEngine(flows.Config{
		States:       app.states,
		Texts:        app.resolver,
		Currencies:   app.currencies,
		Categories:   app.categories,
		Transport:    app.transport,
		Janitor:      app.transport,
		ReviewChatID: cfg.Bot.ReviewChatID,
	})
	app.wire()
	return app
}

func buildStates(cfg *appconfig.Config) state.Manager {
	if cfg.State.Backend == appconfig.StateBackendRedis {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.State.Redis.Addr,
			Password: cfg.State.Redis.Password,
			DB:       cfg.State.Redis.DB,
		})
		return state.NewRedisManager(rdb, state.RedisOptions{TTL: cfg.State.TTL})
	}
	return state.NewMemoryManager()
}

// TelegramRunOptions builds the runtime configuration for the shared
// runner.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: core.Telegram.AdminID,
		IsAdmin: a.isAdmin,
	})
	routes = append(routes,
		router.CallbackRoute(a.registry, router.CallbackOptions{}),
		router.TextRoute(a.states, a.registry, router.TextOptions{}),
	)

	middlewares := []coretelegram.Middleware{
		{Name: "block_banned", Use: middleware.BlockBannedMiddleware(middleware.BlockOptions{
			IsBanned: a.isBanned,
		})},
	}
	middlewares = append(middlewares, coretelegram.DefaultMiddlewares(core, a.onRateLimited)...)

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    a.registry,
		Middlewares: middlewares,
		Routes:      routes,
		OnStart: func(_ context.Context, rt coretelegram.Runtime) error {
			// The engine's transport needs the live bot before updates flow.
			a.transport.Bind(rt.Bot)
			return nil
		},
		OnStop: func(_ context.Context, _ coretelegram.Runtime) error {
			return a.infra.Close()
		},
	}, nil
}

func (a *App) isAdmin(userID int64) bool {
	user, err := a.users.ByTelegramID(context.Background(), userID)
	return err == nil && user.IsAdmin
}

func (a *App) isBanned(userID int64) bool {
	user, err := a.users.ByTelegramID(context.Background(), userID)
	return err == nil && user.IsBanned
}

// onRateLimited answers throttled users with the localized notice. The
// plain-message variant dismisses itself so it does not pile up in the chat.
func (a *App) onRateLimited(c tele.Context) error {
	lang := a.senderLanguage(c)
	t := a.resolver.Resolve(requestContext(c), []string{"too_many_requests"}, lang)
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: t["too_many_requests"], ShowAlert: true})
	}
	msg, err := c.Bot().Send(c.Recipient(), t["too_many_requests"])
	if err != nil {
		return err
	}
	helpers.DiscardAfter(c, msg, throttleNoticeTTL)
	return nil
}

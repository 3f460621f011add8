package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/niksmo/shopcart/config"
	"github.com/niksmo/shopcart/internal/adapter"
	"github.com/niksmo/shopcart/internal/adapter/httphandler"
	"github.com/niksmo/shopcart/internal/adapter/kafka"
	"github.com/niksmo/shopcart/internal/adapter/notify"
	"github.com/niksmo/shopcart/internal/adapter/storage"
	"github.com/niksmo/shopcart/internal/core/port"
	"github.com/niksmo/shopcart/internal/core/service"
	"github.com/niksmo/shopcart/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type stores struct {
	catalog port.CatalogStore
	carts   port.CartStore
	coupons port.CouponStore
	closeFn func()
}

type serdes struct {
	catalogEvent schema.Serde
	couponEvent  schema.Serde
}

type broker struct {
	tlsConfig   *tls.Config
	serdes      serdes
	producer    *kafka.EventsProducer
	couponTable port.CouponTableProcessor
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	bus        *notify.Bus
	stores     stores
	broker     broker
	service    service.Service
	httpServer httphandler.HTTPServer
	wg         sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initNotify()
	app.initStorage()
	if cfg.Broker.Enabled {
		app.initTLS()
		app.initSerdes()
		app.initProducers()
		app.initCouponTable()
	}
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initNotify() {
	app.bus = notify.NewBus()
	ch, _ := app.bus.Subscribe(app.cfg.Notify.BufferSize)

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		notify.LogSubscriber(ch)
	}()
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	if app.cfg.Storage.Driver == config.DriverMemory {
		app.stores = stores{
			catalog: storage.NewMemoryCatalog(),
			carts:   storage.NewMemoryCarts(),
			coupons: storage.NewMemoryCoupons(),
			closeFn: func() {},
		}
		slog.Info("in-memory storage is used", "op", op)
		return
	}

	db, err := storage.NewSQLDB(app.ctx, app.cfg.Storage.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.stores = stores{
		catalog: storage.NewProductsRepository(db),
		carts:   storage.NewCartsRepository(db),
		coupons: storage.NewCouponsRepository(db),
		closeFn: db.Close,
	}
}

func (app *App) initTLS() {
	const op = "App.initTLS"
	t := app.cfg.Broker.TLS

	tlsConfig, err := adapter.MakeTLSConfig(t.CA, t.Cert, t.Key)
	if err != nil {
		app.fallDown(op, err)
	}
	app.broker.tlsConfig = tlsConfig
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"
	urls := app.cfg.Broker.SchemaRegistryURLs
	topics := app.cfg.Broker.Topics
	ctx := app.ctx

	srOpts := []sr.ClientOpt{sr.URLs(urls...)}
	if app.broker.tlsConfig != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(app.broker.tlsConfig))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	schemaCreater := schema.NewSchemaCreater(srClient)

	catalogSerde, err := schema.NewSerdeCatalogEventV1(
		ctx,
		schema.SubjectOpt(topics.CatalogEvents+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	couponSerde, err := schema.NewSerdeCouponEventV1(
		ctx,
		schema.SubjectOpt(topics.CouponEvents+"-value"),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.broker.serdes = serdes{
		catalogEvent: catalogSerde,
		couponEvent:  couponSerde,
	}
}

func (app *App) initProducers() {
	const op = "App.initProducers"

	ctx := app.ctx
	seedBrokers := app.cfg.Broker.SeedBrokers
	topics := app.cfg.Broker.Topics
	tlsConfig := app.broker.tlsConfig

	catalogProducer, err := kafka.NewCatalogEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.CatalogEvents, tlsConfig),
		kafka.ProducerEncoderOpt(app.broker.serdes.catalogEvent),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	couponProducer, err := kafka.NewCouponEventsProducer(
		kafka.ProducerClientOpt(ctx, seedBrokers, topics.CouponEvents, tlsConfig),
		kafka.ProducerEncoderOpt(app.broker.serdes.couponEvent),
	)
	if err != nil {
		catalogProducer.Close()
		app.fallDown(op, err)
	}

	p := kafka.NewEventsProducer(catalogProducer, couponProducer)
	app.broker.producer = &p
}

func (app *App) initCouponTable() {
	const op = "App.initCouponTable"

	p, err := kafka.NewCouponTableProcessor(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.CouponEvents,
		app.cfg.Broker.Consumers.CouponTableGroup,
		app.broker.serdes.couponEvent,
		app.broker.tlsConfig,
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.broker.couponTable = p
}

func (app *App) initCoreService() {
	var producer port.EventsProducer
	if app.broker.producer != nil {
		producer = app.broker.producer
	}

	app.service = service.New(
		app.stores.catalog,
		app.stores.carts,
		app.stores.coupons,
		app.bus,
		producer,
	)
}

func (app *App) initInboundAdapters() {
	addr := app.cfg.HTTPServerAddr
	v := httphandler.NewValidator()

	mux := http.NewServeMux()
	httphandler.RegisterStore(mux, app.service, v)
	httphandler.RegisterAdmin(mux, app.service, v)

	handler := httphandler.LogRequests(httphandler.AllowJSON(mux))
	app.httpServer = httphandler.NewHTTPServer(addr, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	if app.broker.couponTable != nil {
		app.wg.Add(1)
		go func() {
			defer app.wg.Done()
			app.broker.couponTable.Run(app.ctx)
		}()
	}

	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)

	if app.broker.couponTable != nil {
		app.broker.couponTable.Close()
	}
	if app.broker.producer != nil {
		app.broker.producer.Close()
	}
	app.stores.closeFn()
	app.bus.Close()

	app.wg.Wait()
	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

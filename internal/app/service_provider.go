package app

import (
	"context"
	"fmt"

	authAPI "slot_kiosk/internal/api/auth"
	consoleAPI "slot_kiosk/internal/api/console"
	"slot_kiosk/internal/bus"
	"slot_kiosk/internal/config"
	"slot_kiosk/internal/config/env"
	"slot_kiosk/internal/logger"
	"slot_kiosk/internal/metrics"
	"slot_kiosk/internal/model"
	"slot_kiosk/internal/repository"
	"slot_kiosk/internal/repository/eeprom_repo"
	"slot_kiosk/internal/repository/pg_block_repo"
	"slot_kiosk/internal/repository/redis_block_repo"
	"slot_kiosk/internal/repository/stats_repo"
	"slot_kiosk/internal/repository/token_repo"
	"slot_kiosk/internal/service"
	"slot_kiosk/internal/service/auth"
	"slot_kiosk/internal/service/game"
	servModel "slot_kiosk/internal/service/game/model"
	"slot_kiosk/internal/service/input"
	"slot_kiosk/internal/service/ledger"
	"slot_kiosk/internal/session"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Configs
	logCfg      config.LogConfig
	kioskCfg    config.KioskConfig
	busCfg      config.BusConfig
	payoutCfg   config.PayoutConfig
	ledgerCfg   config.LedgerConfig
	pgConfig    config.PGConfig
	redisCfg    config.RedisConfig
	kafkaCfg    config.KafkaConfig
	httpCfg     config.HTTPConfig
	metricsCfg  config.MetricsConfig
	jwtCfg      config.JWTConfig
	operatorCfg config.OperatorConfig

	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// Game bits
	bus       *bus.Bus
	state     *session.State
	table     *servModel.PayoutTable
	gameServ  service.GameService
	inputServ service.InputService
	statsRepo repository.StatsRepository

	// Storage
	txManager   trm.Manager
	dbClient    *pgxpool.Pool
	redisClient *redis.Client
	store       repository.NVStore
	fileStore   *eeprom_repo.File

	// Card bits
	reader     *token_repo.SimReader
	ledgerServ service.LedgerService

	kafkaWriter *kafka.Writer

	// Console
	authServ    service.AuthService
	authHand    *authAPI.Handler
	consoleHand *consoleAPI.Handler
	router      chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) KioskCfg() config.KioskConfig {
	if sp.kioskCfg == nil {
		cfg, err := env.NewKioskConfig()
		if err != nil {
			panic("failed to get kiosk config: " + err.Error())
		}
		sp.kioskCfg = cfg
	}
	return sp.kioskCfg
}

func (sp *ServiceProvider) BusCfg() config.BusConfig {
	if sp.busCfg == nil {
		cfg, err := env.NewBusConfig()
		if err != nil {
			panic("failed to get bus config: " + err.Error())
		}
		sp.busCfg = cfg
	}
	return sp.busCfg
}

func (sp *ServiceProvider) PayoutCfg() config.PayoutConfig {
	if sp.payoutCfg == nil {
		cfg, err := env.NewPayoutConfig()
		if err != nil {
			panic("failed to get payout config: " + err.Error())
		}
		sp.payoutCfg = cfg
	}
	return sp.payoutCfg
}

func (sp *ServiceProvider) LedgerCfg() config.LedgerConfig {
	if sp.ledgerCfg == nil {
		cfg, err := env.NewLedgerConfig()
		if err != nil {
			panic("failed to get ledger config: " + err.Error())
		}
		sp.ledgerCfg = cfg
	}
	return sp.ledgerCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) KafkaCfg() config.KafkaConfig {
	if sp.kafkaCfg == nil {
		cfg, err := env.NewKafkaConfig()
		if err != nil {
			panic("failed to get kafka config: " + err.Error())
		}
		sp.kafkaCfg = cfg
	}
	return sp.kafkaCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) MetricsCfg() config.MetricsConfig {
	if sp.metricsCfg == nil {
		cfg, err := env.NewMetricsConfig()
		if err != nil {
			panic("failed to get metrics config: " + err.Error())
		}
		sp.metricsCfg = cfg
	}
	return sp.metricsCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) OperatorCfg() config.OperatorConfig {
	if sp.operatorCfg == nil {
		cfg, err := env.NewOperatorConfig()
		if err != nil {
			panic("failed to get operator config: " + err.Error())
		}
		sp.operatorCfg = cfg
	}
	return sp.operatorCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		cfg := sp.LogCfg()
		l, err := logger.New(cfg.ServiceName(), cfg.Env(), cfg.Level())
		if err != nil {
			panic("failed to init logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
}

func (sp *ServiceProvider) Registry() *prometheus.Registry {
	if sp.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sp.registry = reg
	}
	return sp.registry
}

func (sp *ServiceProvider) Metrics() *metrics.Metrics {
	if sp.metrics == nil {
		sp.metrics = metrics.New(sp.Registry(), sp.State().Balance)
	}
	return sp.metrics
}

func (sp *ServiceProvider) Bus() *bus.Bus {
	if sp.bus == nil {
		cfg := sp.BusCfg()
		sp.bus = bus.New(cfg.Capacity(), cfg.MaxSubscribers())
	}
	return sp.bus
}

func (sp *ServiceProvider) State() *session.State {
	if sp.state == nil {
		cfg := sp.KioskCfg()
		sp.state = session.New(cfg.InitialBalance(), cfg.Ladder().Min)
	}
	return sp.state
}

func (sp *ServiceProvider) PayoutTable() *servModel.PayoutTable {
	if sp.table == nil {
		t, err := env.LoadPayoutTable(sp.PayoutCfg())
		if err != nil {
			panic("failed to load payout table: " + err.Error())
		}
		sp.table = t
	}
	return sp.table
}

func (sp *ServiceProvider) GameService() service.GameService {
	if sp.gameServ == nil {
		cfg := sp.KioskCfg()
		sp.gameServ = game.NewGameService(game.Deps{
			State:       sp.State(),
			Table:       sp.PayoutTable(),
			Ladder:      cfg.Ladder(),
			Pub:         sp.Bus(),
			SettleDelay: cfg.SettleDelay(),
			Log:         sp.Logger(),
		})
	}
	return sp.gameServ
}

func (sp *ServiceProvider) InputService() service.InputService {
	if sp.inputServ == nil {
		cfg := sp.KioskCfg()
		sp.inputServ = input.NewInputService(sp.GameService(), cfg.InputQueueSize(), cfg.PollInterval(), sp.Logger())
	}
	return sp.inputServ
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(sp.KioskCfg().StatsWindow())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		cfg := sp.RedisCfg()
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

// NVStore - card record storage selected by LEDGER_STORE
func (sp *ServiceProvider) NVStore(ctx context.Context) repository.NVStore {
	if sp.store == nil {
		cfg := sp.LedgerCfg()
		switch cfg.Store() {
		case config.StoreMemory:
			sp.store = eeprom_repo.NewMemory(cfg.ImageSize())
		case config.StoreFile:
			f, err := eeprom_repo.OpenFile(cfg.ImagePath(), cfg.ImageSize())
			if err != nil {
				panic("failed to open eeprom image: " + err.Error())
			}
			sp.fileStore = f
			sp.store = f
		case config.StorePostgres:
			r := pg_block_repo.NewBlockRepository(sp.DBClient(ctx), cfg.ImageSize())
			if err := r.Migrate(ctx); err != nil {
				panic("failed to migrate block table: " + err.Error())
			}
			sp.store = r
		case config.StoreRedis:
			sp.store = redis_block_repo.NewBlockRepository(sp.RedisClient(ctx), sp.RedisCfg().Key(), cfg.ImageSize())
		default:
			panic("unknown ledger store: " + cfg.Store())
		}
	}
	return sp.store
}

// Transactor - only the PostgreSQL store groups a persist into one transaction
func (sp *ServiceProvider) Transactor(ctx context.Context) repository.Transactor {
	if sp.LedgerCfg().Store() == config.StorePostgres {
		return sp.TXManager(ctx)
	}
	return nil
}

func (sp *ServiceProvider) TokenReader() *token_repo.SimReader {
	if sp.reader == nil {
		sp.reader = token_repo.NewSimReader()
	}
	return sp.reader
}

// LedgerService returns nil when the card ledger is disabled
func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil && sp.LedgerCfg().Enabled() {
		cfg := sp.LedgerCfg()
		sp.ledgerServ = ledger.NewLedgerService(ledger.Deps{
			State:  sp.State(),
			Store:  sp.NVStore(ctx),
			Reader: sp.TokenReader(),
			Tx:     sp.Transactor(ctx),
			Cfg: ledger.Config{
				Slots:       cfg.Slots(),
				StartOffset: cfg.StartOffset(),
				ScanTimeout: cfg.ScanTimeout(),
				WriteDelay:  cfg.WriteDelay(),
			},
			Log: sp.Logger(),
			Lag: sp.Metrics(),
			Ops: sp.Metrics(),
		})
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) FactoryCards() []model.CardRecord {
	cards, err := env.NewCardsFromYAML(sp.LedgerCfg().CardsPath())
	if err != nil {
		panic("failed to load factory cards: " + err.Error())
	}
	return cards
}

// KafkaWriter returns nil when no brokers are configured
func (sp *ServiceProvider) KafkaWriter() *kafka.Writer {
	if sp.kafkaWriter == nil && sp.KafkaCfg().Enabled() {
		cfg := sp.KafkaCfg()
		sp.kafkaWriter = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers()...),
			Topic:                  cfg.Topic(),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			Async:                  true,
			Completion: func(msgs []kafka.Message, err error) {
				if err != nil {
					sp.Logger().Warn("event export failed", zap.Int("messages", len(msgs)), zap.Error(err))
				}
			},
		}
	}
	return sp.kafkaWriter
}

func (sp *ServiceProvider) AuthService() service.AuthService {
	if sp.authServ == nil {
		jwtCfg := sp.JWTCfg()
		op := sp.OperatorCfg()
		sp.authServ = auth.NewAuthService(auth.Config{
			Operator:     op.Name(),
			PasswordHash: op.PasswordHash(),
			SecretKey:    jwtCfg.AccessTokenSecretKey(),
			TTL:          jwtCfg.AccessTokenDuration(),
		})
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler() *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.AuthService(),
			Log:  sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) ConsoleHandler(ctx context.Context) *consoleAPI.Handler {
	if sp.consoleHand == nil {
		deps := consoleAPI.HandlerDeps{
			Game:    sp.GameService(),
			Input:   sp.InputService(),
			Stats:   sp.StatsRepository(),
			Session: sp.State().ID(),
		}
		if l := sp.LedgerService(ctx); l != nil {
			deps.Ledger = l
			deps.Placer = sp.TokenReader()
		}
		sp.consoleHand = consoleAPI.NewHandler(deps)
	}
	return sp.consoleHand
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = consoleAPI.NewRouter(
			sp.AuthHandler(),
			sp.ConsoleHandler(ctx),
			sp.JWTCfg().AccessTokenSecretKey(),
			sp.HTTPCfg().AllowedOrigins(),
		)
	}
	return sp.router
}

// Health - the configured card store answers
func (sp *ServiceProvider) Health(ctx context.Context) error {
	if sp.dbClient != nil {
		if err := sp.dbClient.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if sp.redisClient != nil {
		if err := sp.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// Close releases connections opened by the provider
func (sp *ServiceProvider) Close() {
	if sp.kafkaWriter != nil {
		_ = sp.kafkaWriter.Close()
	}
	if sp.fileStore != nil {
		_ = sp.fileStore.Close()
	}
	if sp.redisClient != nil {
		_ = sp.redisClient.Close()
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}

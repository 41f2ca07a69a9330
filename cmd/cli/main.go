package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rledge21/shardmart/internal/adapter/channel"
	"github.com/rledge21/shardmart/internal/adapter/handler"
	"github.com/rledge21/shardmart/internal/adapter/storage"
	"github.com/rledge21/shardmart/internal/config"
	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/core/service"
	"github.com/rledge21/shardmart/internal/port"
)

const connectTimeout = 3 * time.Second

type app struct {
	cli     *handler.CLI
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	a := &app{}

	regions := make(map[domain.Region]port.RegionalStore, len(cfg.RegionDatabases))
	for region := range cfg.RegionDatabases {
		db, err := openPostgres(ctx, cfg.RegionalDSN(region))
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect to %s store: %w", region, err)
		}
		a.closers = append(a.closers, func() { db.Close() })
		regions[region] = storage.NewPostgresRegional(db, region)
	}

	centralDB, err := openPostgres(ctx, cfg.CentralDSN())
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect to central store: %w", err)
	}
	a.closers = append(a.closers, func() { centralDB.Close() })
	central := storage.NewPostgresCentral(centralDB)

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect to audit store: %w", err)
	}
	a.closers = append(a.closers, func() { mongoClient.Disconnect(context.Background()) })

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		a.close()
		return nil, fmt.Errorf("ping audit store: %w", err)
	}
	audit := storage.NewMongoAudit(mongoClient.Database(cfg.MongoDatabase))

	worker := service.NewSyncWorker(central, log)

	var ch port.SyncChannel
	switch cfg.SyncMode {
	case config.SyncModeQueue:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		a.closers = append(a.closers, func() { rdb.Close() })
		ch = channel.NewRedisQueue(rdb, log)
	default:
		ch = channel.NewDirect(worker)
	}

	orders := service.NewOrderService(regions, audit, ch, log)
	products := service.NewProductService(regions, audit, ch, log)
	reports := service.NewReportService(central)

	a.cli = handler.NewCLI(orders, products, reports, os.Stdin, os.Stdout)
	return a, nil
}

func openPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func main() {
	ctx := context.Background()

	var (
		region     string
		customer   string
		product    string
		components string
		quantity   int
	)

	root := &cobra.Command{
		Use:          "shardmart",
		Short:        "Regional order placement with central synchronization",
		SilenceUsage: true,
	}

	orderCmd := &cobra.Command{
		Use:   "order",
		Short: "Place an order against a regional store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			return a.cli.PlaceOrder(ctx, region, customer, product, quantity)
		},
	}
	orderCmd.Flags().StringVar(&region, "region", "", "target region (boston/denver/seattle)")
	orderCmd.Flags().StringVar(&customer, "customer", "", "customer name")
	orderCmd.Flags().StringVar(&product, "product", "", "product name")
	orderCmd.Flags().IntVar(&quantity, "quantity", 0, "quantity to order")

	salesCmd := &cobra.Command{
		Use:   "sales",
		Short: "View all sales recorded in the central store",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			return a.cli.ViewSales(ctx)
		},
	}

	productCmd := &cobra.Command{
		Use:   "product",
		Short: "Register a product and its required components",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			return a.cli.RegisterProduct(ctx, region, product, components, quantity)
		},
	}
	productCmd.Flags().StringVar(&region, "region", "", "target region (boston/denver/seattle)")
	productCmd.Flags().StringVar(&product, "name", "", "new product name")
	productCmd.Flags().StringVar(&components, "components", "", "comma-separated component names")
	productCmd.Flags().IntVar(&quantity, "quantity", 0, "initial quantity for the product")

	root.AddCommand(orderCmd, salesCmd, productCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

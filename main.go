package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/harikrishna2005/bot-launcher/internal/repo"
	"github.com/harikrishna2005/bot-launcher/internal/schedule"
	"github.com/harikrishna2005/bot-launcher/internal/service/exchange/binance"
	"github.com/harikrishna2005/bot-launcher/internal/service/rebalance"
	"github.com/harikrishna2005/bot-launcher/ioc"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func initViper() {

	// --config=./config/xxx.yaml
	file := pflag.String("config", "./config/config.dev.yaml", "specify config file")
	pflag.Parse()

	viper.SetConfigFile(*file)
	err := viper.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s \n", err))
	}

}

func main() {
	initViper()

	db := ioc.InitDB()
	if err := repo.InitTables(db); err != nil {
		panic(err)
	}
	recordRepo := repo.NewRebalanceRepo(db)

	bian := ioc.InitBinanceCli()
	exchangeSvc := binance.NewService(bian)

	strategy := ioc.InitStrategy()
	task := rebalance.NewTask(strategy, exchangeSvc, exchangeSvc, exchangeSvc, recordRepo)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runner := schedule.NewIntervalRunner(task, strategy.Interval)
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		panic(err)
	}
}

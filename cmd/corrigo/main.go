package main

import (
	"flag"
	"fmt"

	"github.com/corrigo/corrigo/pkg/http"
	"github.com/corrigo/corrigo/pkg/runner"
)

var (
	configFile string
)

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()
	printRunner()

	eng, err := initEngine(configFile)
	if err != nil {
		panic(err)
	}

	for _, col := range eng.collector.Collectors() {
		if err := eng.metricsSrv.RegisterCollector(col); err != nil {
			panic(err)
		}
	}
	if err := eng.metricsSrv.Start(); err != nil {
		panic(err)
	}
	defer func() { _ = eng.metricsSrv.Stop() }()

	if err := eng.blacklist.Start(); err != nil {
		panic(err)
	}
	defer eng.blacklist.Stop()

	httpClean := http.NewHttp(*eng.router.Http, eng.router.Router())
	httpClean()
}

func printRunner() {
	fmt.Println("runner.pwd:", runner.Pwd)
	fmt.Println("runner.hostname:", runner.Hostname)
}

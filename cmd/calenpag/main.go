package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fante86/calenpag/internal/config"
	"github.com/fante86/calenpag/internal/server"
	"github.com/fante86/calenpag/internal/util"
)

var (
	port    = flag.Int("port", 0, "porta do servidor (config.toml tem prioridade quando definida)")
	devMode = flag.Bool("dev", false, "modo de desenvolvimento (não abre o navegador)")
	dataDir = flag.String("dataDir", "", "diretório de dados (sobrescreve o arquivo de configuração)")
)

func main() {
	flag.Parse()

	// .env is optional and local-only.
	_ = godotenv.Load()

	fmt.Println("==========================================")
	fmt.Println("  CalenPag - Calendário de Pagamentos")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("falha ao carregar configuração, usando padrões: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("falha ao criar diretório de dados: %v", err)
	} else {
		fmt.Printf("Diretório de dados: %s\n", dir)
	}

	cfg.Server.Port = util.FindAvailablePort(cfg.Server.Port)

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Servidor escutando na porta %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("falha ao iniciar o servidor: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("Abrindo navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Não foi possível abrir o navegador, acesse manualmente: %s\n", url)
		}
	} else {
		fmt.Printf("Modo de desenvolvimento: acesse %s\n", url)
	}

	fmt.Println("\nPressione Ctrl+C para encerrar...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nEncerrando...")
	if err := srv.Close(); err != nil {
		log.Printf("falha ao encerrar: %v", err)
	}
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/config"
	"github.com/europeuzinho/sitechama-ops/internal/dispatch"
	"github.com/europeuzinho/sitechama-ops/internal/dto"
	"github.com/europeuzinho/sitechama-ops/internal/infra"
	"github.com/europeuzinho/sitechama-ops/internal/service"
	"github.com/europeuzinho/sitechama-ops/internal/store"
	"github.com/europeuzinho/sitechama-ops/internal/worker"
	"github.com/europeuzinho/sitechama-ops/internal/workstation"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	restauranteID := flag.String("restaurante", "", "id do restaurante desta estação")
	login := flag.String("login", "", "código de login do funcionário")
	senha := flag.String("senha", "", "PIN do funcionário")
	flag.Parse()
	if *restauranteID == "" || *login == "" || *senha == "" {
		log.Fatal().Msg("uso: workstation -restaurante <id> -login <código> -senha <PIN>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	backend, err := store.NewFileBackend(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open data dir")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changeBus, rdb := buildBus(ctx, cfg)
	defer changeBus.Close()

	st := store.New(backend, changeBus)
	restaurantes := service.NewRestauranteService(st)
	auth := service.NewAuthService(st, cfg.SessionSecret)

	// The shift-report pipeline rides the redis deployment; without it
	// the caixa closes without mailing a report.
	var dispatcher service.RelatorioDispatcher
	if rdb != nil {
		dispatcher = worker.NewDispatcher(rdb)
	}
	caixa := service.NewCaixaService(st, dispatcher)
	fila := service.NewFilaService(st)
	pedidos := service.NewPedidoService(st)

	if rdb != nil {
		mailer := infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
		handlers := &worker.Handlers{
			Relatorio: worker.NewRelatorioWorker(caixa, restaurantes, mailer, cfg.ReportStoragePath),
		}
		worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	}

	restaurante := restaurantes.PorID(*restauranteID)
	if restaurante == nil {
		log.Fatal().Str("restaurante_id", *restauranteID).Msg("restaurante não encontrado")
	}

	funcionario, err := auth.Login(ctx, restaurante, dto.LoginRequest{Login: *login, Senha: *senha})
	if err != nil {
		log.Fatal().Err(err).Msg("login recusado")
	}

	posto, err := dispatch.Resolver(restaurante, funcionario.Cargo)
	if err != nil {
		// Cargo sem posto mapeado é erro explícito para o operador.
		log.Fatal().Err(err).Str("cargo", string(funcionario.Cargo)).Msg("sem posto de trabalho")
	}

	switch posto {
	case dispatch.PostoCozinha:
		v := workstation.NewCozinhaView(*restauranteID, auth, restaurantes, pedidos, changeBus, cfg.CozinhaRefresh(), nil)
		ativarERodar(ctx, v.Ativar, v.Run, "cozinha")
	case dispatch.PostoCaixa:
		v := workstation.NewCaixaView(*restauranteID, auth, restaurantes, caixa, pedidos, changeBus, cfg.CaixaRefresh(), nil)
		ativarERodar(ctx, v.Ativar, v.Run, "caixa")
	case dispatch.PostoSalao:
		v := workstation.NewSalaoView(*restauranteID, auth, restaurantes, pedidos, changeBus, cfg.SalaoRefresh(), nil)
		ativarERodar(ctx, v.Ativar, v.Run, "salão")
	case dispatch.PostoRecepcao:
		v := workstation.NewRecepcaoView(*restauranteID, auth, restaurantes, fila, changeBus, cfg.RecepcaoRefresh(), nil)
		ativarERodar(ctx, v.Ativar, v.Run, "recepção")
	case dispatch.PostoAdmin:
		log.Fatal().Str("plano", string(restaurante.Plano)).Msg("plano sem direito a este posto — use a visão administrativa")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("encerrando estação…")
	cancel()
}

// ativarERodar runs both gates and starts the refresh loop.
func ativarERodar(ctx context.Context, ativar func(context.Context) (*workstation.Ativacao, error), run func(context.Context), nome string) {
	a, err := ativar(ctx)
	if err != nil {
		log.Fatal().Err(err).Str("posto", nome).Msg("falha ao ativar estação")
	}
	if !a.Autenticado || a.Redirect != "" {
		log.Fatal().Str("redirect", a.Redirect).Msg("sessão rejeitada para este posto")
	}
	log.Info().Str("posto", nome).Str("funcionario", a.Funcionario.Nome).Msg("estação ativa")
	go run(ctx)
}

// buildBus selects the change bus driver; the redis client is returned
// alongside so the shift-report queue can share it.
func buildBus(ctx context.Context, cfg *config.Config) (bus.Bus, *redis.Client) {
	switch cfg.BusDriver {
	case "redis":
		rdb, err := infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		return bus.NewRedisBus(ctx, rdb), rdb
	case "local":
		return bus.NewLocalBus(), nil
	default:
		b, err := bus.NewFileBus(filepath.Join(cfg.DataDir, "notificacoes"))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start file bus")
		}
		return b, nil
	}
}

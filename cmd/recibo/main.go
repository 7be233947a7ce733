// cmd/recibo — renderiza o comprovante PDF de um reforço de caixa a
// partir do registro imutável no store.
// Uso: DATA_DIR=./data go run cmd/recibo/main.go -reforco <uuid>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/config"
	"github.com/europeuzinho/sitechama-ops/internal/infra"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/service"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

func main() {
	idArg := flag.String("reforco", "", "id do reforço")
	flag.Parse()
	if *idArg == "" {
		fmt.Fprintln(os.Stderr, "uso: recibo -reforco <uuid>")
		os.Exit(1)
	}
	id, err := uuid.Parse(*idArg)
	if err != nil {
		log.Fatalf("id inválido: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	backend, err := store.NewFileBackend(cfg.DataDir)
	if err != nil {
		log.Fatalf("data dir error: %v", err)
	}
	st := store.New(backend, bus.NewLocalBus())
	caixa := service.NewCaixaService(st, nil)
	restaurantes := service.NewRestauranteService(st)

	reforco, ok := caixa.ReforcoPorID(id)
	if !ok {
		// Link profundo para um registro ausente é terminal.
		fmt.Fprintf(os.Stderr, "reforço %s não encontrado\n", id)
		os.Exit(1)
	}

	restaurante := restauranteDaSessao(caixa, restaurantes, reforco.SessaoCaixaID)
	if restaurante == nil {
		fmt.Fprintf(os.Stderr, "restaurante da sessão %s não encontrado\n", reforco.SessaoCaixaID)
		os.Exit(1)
	}

	path, err := infra.GenerateReforcoPDF(reforco, restaurante, cfg.ReportStoragePath)
	if err != nil {
		log.Fatalf("pdf error: %v", err)
	}
	fmt.Println(path)
}

// restauranteDaSessao resolve o dono de uma sessão varrendo os ledgers
// dos restaurantes cadastrados.
func restauranteDaSessao(caixa service.CaixaService, restaurantes service.RestauranteService, sessaoID uuid.UUID) *model.Restaurante {
	for _, r := range restaurantes.Listar() {
		for _, s := range caixa.Sessoes(r.ID) {
			if s.ID == sessaoID {
				rest := r
				return &rest
			}
		}
	}
	return nil
}

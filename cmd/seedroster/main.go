// cmd/seedroster — grava um restaurante de demonstração no store.
// Uso: DATA_DIR=./data go run cmd/seedroster/main.go
package main

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
	"github.com/europeuzinho/sitechama-ops/internal/config"
	"github.com/europeuzinho/sitechama-ops/internal/model"
	"github.com/europeuzinho/sitechama-ops/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	backend, err := store.NewFileBackend(cfg.DataDir)
	if err != nil {
		log.Fatalf("data dir error: %v", err)
	}
	st := store.New(backend, bus.NewLocalBus())

	hash := func(pin string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(pin), 12)
		if err != nil {
			log.Fatalf("bcrypt error: %v", err)
		}
		return string(h)
	}

	demo := model.Restaurante{
		ID:    "demo",
		Nome:  "Cantina Demo",
		Email: "demo@sitechama.com.br",
		Plano: model.PlanoCompleto,
		Funcionarios: []model.Funcionario{
			{Login: "1234", Senha: hash("5678"), Nome: "Ana Caixa", Cargo: model.CargoCaixa},
			{Login: "2345", Senha: hash("6789"), Nome: "Bruno Chef", Cargo: model.CargoCozinha},
			{Login: "3456", Senha: hash("7890"), Nome: "Carla Recepção", Cargo: model.CargoRecepcao},
			{Login: "4567", Senha: hash("8901"), Nome: "Diego Garçom", Cargo: model.CargoGarcom},
		},
	}

	// Idempotente: substitui o demo se já existir, preserva os demais.
	var restaurantes []model.Restaurante
	st.Read(store.KeyRestaurantes, &restaurantes)
	replaced := false
	for i := range restaurantes {
		if restaurantes[i].ID == demo.ID {
			restaurantes[i] = demo
			replaced = true
		}
	}
	if !replaced {
		restaurantes = append(restaurantes, demo)
	}

	if err := st.Write(context.Background(), store.KeyRestaurantes, restaurantes); err != nil {
		log.Fatalf("seed error: %v", err)
	}
	fmt.Printf("restaurante %q gravado com %d funcionários\n", demo.ID, len(demo.Funcionarios))
}

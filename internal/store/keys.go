package store

import (
	"strings"

	"github.com/europeuzinho/sitechama-ops/internal/bus"
)

// Persistence keys. Everything restaurant-owned is namespaced by the
// restaurant id so no value ever leaks across tenants; the employee
// session is scoped to the storage profile itself (one per data dir,
// like one per browser profile).
const (
	KeySessaoFuncionario = "sessao:funcionario"
	KeyRestaurantes      = "restaurantes"
)

func KeyCaixa(restauranteID string) string {
	return "restaurante:" + restauranteID + ":caixa"
}

func KeyFila(restauranteID string) string {
	return "restaurante:" + restauranteID + ":fila"
}

func KeyPedidos(restauranteID string) string {
	return "restaurante:" + restauranteID + ":pedidos"
}

// TopicForKey maps a persistence key to the change topic announced after
// a successful write. Keys outside every domain (the employee session)
// publish nothing — other views have no business observing logins.
func TopicForKey(key string) string {
	switch {
	case key == KeyRestaurantes:
		return bus.TopicRestaurantes
	case strings.HasSuffix(key, ":caixa"):
		return bus.TopicCaixa
	case strings.HasSuffix(key, ":fila"):
		return bus.TopicFila
	case strings.HasSuffix(key, ":pedidos"):
		return bus.TopicPedidos
	default:
		return ""
	}
}

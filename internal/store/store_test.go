package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/europeuzinho/sitechama-ops/internal/apperror"
	"github.com/europeuzinho/sitechama-ops/internal/bus"
)

type fixture struct {
	Nome  string          `json:"nome"`
	Valor decimal.Decimal `json:"valor"`
	Tags  []string        `json:"tags"`
}

func newStore(t *testing.T) (*Store, *MemoryBackend, *bus.LocalBus) {
	t.Helper()
	backend := NewMemoryBackend()
	b := bus.NewLocalBus()
	return New(backend, b), backend, b
}

func TestReadWriteRoundTrip(t *testing.T) {
	st, _, _ := newStore(t)

	in := fixture{Nome: "sessão", Valor: decimal.NewFromFloat(100.50), Tags: []string{"a", "b"}}
	require.NoError(t, st.Write(context.Background(), KeyCaixa("r1"), in))

	var out fixture
	require.True(t, st.Read(KeyCaixa("r1"), &out))
	assert.Equal(t, in.Nome, out.Nome)
	assert.True(t, in.Valor.Equal(out.Valor))
	assert.Equal(t, in.Tags, out.Tags)
}

func TestReadAbsentKeyFailsSoft(t *testing.T) {
	st, _, _ := newStore(t)

	var out fixture
	assert.False(t, st.Read("nunca:gravado", &out))
	assert.Empty(t, out.Nome)
}

func TestReadCorruptValueFailsSoft(t *testing.T) {
	st, backend, _ := newStore(t)

	require.NoError(t, backend.Put(KeyFila("r1"), []byte("{esto no es json")))

	var out []fixture
	assert.False(t, st.Read(KeyFila("r1"), &out))
	assert.Nil(t, out)
}

func TestWritePublishesMappedTopic(t *testing.T) {
	st, _, b := newStore(t)

	published := 0
	unsub := b.Subscribe(bus.TopicCaixa, func() { published++ })
	defer unsub()

	require.NoError(t, st.Write(context.Background(), KeyCaixa("r1"), fixture{Nome: "x"}))
	assert.Equal(t, 1, published)

	// the employee session key maps to no topic
	require.NoError(t, st.Write(context.Background(), KeySessaoFuncionario, "token"))
	assert.Equal(t, 1, published)
}

func TestWriteQuotaErrorKeepsPriorValue(t *testing.T) {
	st, backend, _ := newStore(t)
	backend.MaxBytes = 64

	require.NoError(t, st.Write(context.Background(), KeyCaixa("r1"), fixture{Nome: "ok"}))

	big := fixture{Nome: "grande", Tags: make([]string, 0, 64)}
	for i := 0; i < 64; i++ {
		big.Tags = append(big.Tags, "xxxxxxxxxx")
	}
	err := st.Write(context.Background(), KeyCaixa("r1"), big)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrArmazenamentoCheio)

	var out fixture
	require.True(t, st.Read(KeyCaixa("r1"), &out))
	assert.Equal(t, "ok", out.Nome)
}

func TestTopicForKey(t *testing.T) {
	assert.Equal(t, bus.TopicCaixa, TopicForKey(KeyCaixa("r9")))
	assert.Equal(t, bus.TopicFila, TopicForKey(KeyFila("r9")))
	assert.Equal(t, bus.TopicPedidos, TopicForKey(KeyPedidos("r9")))
	assert.Equal(t, bus.TopicRestaurantes, TopicForKey(KeyRestaurantes))
	assert.Equal(t, "", TopicForKey(KeySessaoFuncionario))
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)

	_, err = backend.Get("ausente")
	assert.ErrorIs(t, err, ErrAbsent)

	require.NoError(t, backend.Put(KeyCaixa("r1"), []byte(`{"a":1}`)))
	data, err := backend.Get(KeyCaixa("r1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))

	require.NoError(t, backend.Delete(KeyCaixa("r1")))
	_, err = backend.Get(KeyCaixa("r1"))
	assert.ErrorIs(t, err, ErrAbsent)
}

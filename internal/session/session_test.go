package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agilstore/agil/internal/inventory"
	"github.com/agilstore/agil/internal/product"
	"github.com/agilstore/agil/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mouse() product.Product {
	return product.Product{ID: 1, Name: "Mouse", Category: "Perifericos", Quantity: 10, Price: 49.9}
}

// runSession feeds the given input lines to a new session over a temporary
// products file seeded with seed.
func runSession(t *testing.T, seed []product.Product, lines ...string) (string, *inventory.Manager, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	if seed != nil {
		require.NoError(t, storage.WriteProducts(path, seed))
	}

	inv := inventory.New(storage.NewFileStore(path), zap.NewNop())
	require.NoError(t, inv.Load())

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	err := New(inv, in, &out, zap.NewNop()).Run(context.Background())
	return out.String(), inv, err
}

func TestRun_ExitImmediately(t *testing.T) {
	out, _, err := runSession(t, nil, "6")
	require.NoError(t, err)
	assert.Contains(t, out, "--- AGILSTORE ---")
	assert.Contains(t, out, "6. Sair")
	assert.Contains(t, out, "Até logo!")
}

func TestRun_InvalidOption(t *testing.T) {
	out, _, err := runSession(t, nil, "9", "abc", "6")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Opção inválida. Tente novamente."))
	assert.Equal(t, 3, strings.Count(out, "--- AGILSTORE ---"), "menu is shown again after each invalid option")
}

func TestRun_MessagesEndWithBlankLine(t *testing.T) {
	out, _, err := runSession(t, nil, "9", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Opção inválida. Tente novamente.\n\n")
	assert.Contains(t, out, "6. Sair\n\nEscolha uma opção: ")
	assert.True(t, strings.HasSuffix(out, "Até logo!\n\n"), "output ends with %q", out[max(0, len(out)-20):])
}

func TestWriteLoadWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	content := `[{"id":1,"name":"Mouse","category":"P","quantity":1,"price":2},
		{"id":4,"name":"Teclado","category":"P","quantity":-3,"price":2}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	inv := inventory.New(storage.NewFileStore(path), nil)
	err := inv.Load()
	require.ErrorIs(t, err, inventory.ErrLoad)

	var out bytes.Buffer
	WriteLoadWarning(&out, err)
	assert.Contains(t, out.String(), "Aviso: Não foi possível carregar os produtos anteriores.\n")
	assert.Contains(t, out.String(), `Registro 2 inválido (ID 4, "Teclado"): Quantidade deve ser um número positivo.`)
	assert.Contains(t, out.String(), "Corrija o arquivo")
}

func TestWriteLoadWarning_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0644))

	inv := inventory.New(storage.NewFileStore(path), nil)
	err := inv.Load()
	require.Error(t, err)

	var out bytes.Buffer
	WriteLoadWarning(&out, err)
	assert.True(t, strings.HasPrefix(out.String(), "Aviso: Não foi possível carregar os produtos anteriores.\nDetalhe: "))
}

func TestRun_EOFIsFatal(t *testing.T) {
	_, _, err := runSession(t, nil, "2")
	assert.ErrorIs(t, err, ErrInput)
}

func TestRun_CancelledContext(t *testing.T) {
	inv := inventory.New(storage.NewFileStore(filepath.Join(t.TempDir(), "p.json")), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(inv, strings.NewReader("6\n"), &out, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestList_Empty(t *testing.T) {
	out, _, err := runSession(t, nil, "2", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhum produto cadastrado ainda.")
}

func TestAddThenList(t *testing.T) {
	out, inv, err := runSession(t, nil,
		"1", "Mouse", "Perifericos", "10", "49.9",
		"2",
		"6")
	require.NoError(t, err)

	assert.Contains(t, out, "Produto adicionado com sucesso! ID: 1")
	assert.Contains(t, out, "1   | Mouse                | Perifericos  | 10  | R$ 49.90")
	assert.Equal(t, []product.Product{mouse()}, inv.List())
}

func TestAdd_NegativeZeroPrice(t *testing.T) {
	out, inv, err := runSession(t, nil,
		"1", "Mouse", "Perifericos", "10", "-0",
		"2",
		"6",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "1   | Mouse                | Perifericos  | 10  | R$ 0.00")
	assert.NotContains(t, out, "R$ -0.00")
	require.Equal(t, 1, inv.Len())
}

func TestAdd_AbortsOnFirstInvalidField(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"empty name", []string{"1", "  "}, "Erro: Nome não pode estar vazio."},
		{"empty category", []string{"1", "Mouse", ""}, "Erro: Categoria não pode estar vazia."},
		{"negative quantity", []string{"1", "Mouse", "P", "-1"}, "Erro: Quantidade deve ser um número positivo."},
		{"quantity not a number", []string{"1", "Mouse", "P", "dez"}, "Erro: Quantidade inválida"},
		{"negative price", []string{"1", "Mouse", "P", "1", "-3"}, "Erro: Preço deve ser um número positivo."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, inv, err := runSession(t, nil, append(tt.input, "6")...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.Equal(t, 0, inv.Len())
			assert.NotContains(t, out, "Produto adicionado")
		})
	}
}

func TestUpdate_Price(t *testing.T) {
	out, inv, err := runSession(t, []product.Product{mouse()}, "3", "1", "4", "59.9", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Preço atualizado!")

	p, err := inv.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 59.9, p.Price)
}

func TestUpdate_NegativePriceRejected(t *testing.T) {
	out, inv, err := runSession(t, []product.Product{mouse()}, "3", "1", "4", "-5", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Erro: Preço deve ser um número positivo.")

	p, err := inv.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 49.9, p.Price)
}

func TestUpdate_Fields(t *testing.T) {
	out, inv, err := runSession(t, []product.Product{mouse()},
		"3", "1", "1", "Mouse sem fio",
		"3", "1", "2", "Acessorios",
		"3", "1", "3", "7",
		"6")
	require.NoError(t, err)
	assert.Contains(t, out, "Nome atualizado!")
	assert.Contains(t, out, "Categoria atualizada!")
	assert.Contains(t, out, "Quantidade atualizada!")

	p, _ := inv.FindByID(1)
	assert.Equal(t, product.Product{ID: 1, Name: "Mouse sem fio", Category: "Acessorios", Quantity: 7, Price: 49.9}, p)
}

func TestUpdate_CancelAndInvalidChoice(t *testing.T) {
	out, inv, err := runSession(t, []product.Product{mouse()},
		"3", "1", "5",
		"3", "1", "8",
		"6")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelado.")
	assert.Contains(t, out, "Opção inválida.\n")
	assert.Equal(t, []product.Product{mouse()}, inv.List())
}

func TestUpdate_NotFoundAndInvalidID(t *testing.T) {
	out, _, err := runSession(t, []product.Product{mouse()},
		"3", "42",
		"3", "um",
		"6")
	require.NoError(t, err)
	assert.Contains(t, out, "Erro: Produto não encontrado.")
	assert.Contains(t, out, "Erro: ID inválido.")
	assert.NotContains(t, out, "O que deseja atualizar?")
}

func TestDelete_Confirmed(t *testing.T) {
	out, inv, err := runSession(t, []product.Product{mouse()}, "4", "1", "S", "6")
	require.NoError(t, err)
	assert.Contains(t, out, `Tem certeza que quer excluir "Mouse"? (s/n): `)
	assert.Contains(t, out, "Produto excluído.")
	assert.Equal(t, 0, inv.Len())
}

func TestDelete_Declined(t *testing.T) {
	for _, answer := range []string{"n", "", "sim", "yes"} {
		t.Run(answer, func(t *testing.T) {
			out, inv, err := runSession(t, []product.Product{mouse()}, "4", "1", answer, "6")
			require.NoError(t, err)
			assert.Contains(t, out, "Cancelado.")
			assert.Equal(t, []product.Product{mouse()}, inv.List())
		})
	}
}

func TestDelete_NotFound(t *testing.T) {
	out, inv, err := runSession(t, []product.Product{mouse()}, "4", "2", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "Erro: Produto não encontrado.")
	assert.Equal(t, 1, inv.Len())
}

func TestSearch(t *testing.T) {
	seed := []product.Product{
		mouse(),
		{ID: 2, Name: "Mousepad", Category: "Acessorios", Quantity: 3, Price: 19.5},
		{ID: 3, Name: "Teclado", Category: "Perifericos", Quantity: 5, Price: 120},
	}

	t.Run("by id", func(t *testing.T) {
		out, _, err := runSession(t, seed, "5", "1", "3", "6")
		require.NoError(t, err)
		assert.Contains(t, out, "--- Resultado ---")
		assert.Contains(t, out, "Nome: Teclado\n")
		assert.NotContains(t, out, "Nome: Mouse\n")
	})

	t.Run("by name", func(t *testing.T) {
		out, _, err := runSession(t, seed, "5", "2", "MOUSE", "6")
		require.NoError(t, err)
		assert.Contains(t, out, "Nome: Mouse\n")
		assert.Contains(t, out, "Nome: Mousepad\n")
		assert.Contains(t, out, "Preço: R$ 19.50\n")
		assert.NotContains(t, out, "Nome: Teclado")
	})

	t.Run("no match", func(t *testing.T) {
		out, _, err := runSession(t, seed, "5", "2", "monitor", "6")
		require.NoError(t, err)
		assert.Contains(t, out, "Nenhum produto encontrado.")
	})

	t.Run("invalid id", func(t *testing.T) {
		out, _, err := runSession(t, seed, "5", "1", "x", "6")
		require.NoError(t, err)
		assert.Contains(t, out, "Nenhum produto encontrado.")
	})

	t.Run("empty name", func(t *testing.T) {
		out, _, err := runSession(t, seed, "5", "2", "", "6")
		require.NoError(t, err)
		assert.Contains(t, out, "Nenhum produto encontrado.")
	})

	t.Run("invalid mode", func(t *testing.T) {
		out, _, err := runSession(t, seed, "5", "3", "6")
		require.NoError(t, err)
		assert.Contains(t, out, "Opção inválida.\n")
	})
}

// failingStore accepts loads but refuses every save.
type failingStore struct{}

func (failingStore) Load() ([]product.Product, int, error) { return nil, 0, nil }
func (failingStore) Save([]product.Product, int) error   { return errors.New("disk full") }

func TestSaveFailureIsNotFatal(t *testing.T) {
	inv := inventory.New(failingStore{}, nil)
	require.NoError(t, inv.Load())

	var out bytes.Buffer
	in := strings.NewReader("1\nMouse\nPerifericos\n10\n49.9\n6\n")
	err := New(inv, in, &out, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Erro ao salvar os dados.")
	assert.Contains(t, out.String(), "Produto adicionado com sucesso! ID: 1")
	assert.Equal(t, 1, inv.Len())
}

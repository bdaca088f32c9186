package session

import (
	"errors"
	"strings"

	"github.com/agilstore/agil/internal/inventory"
	"github.com/agilstore/agil/internal/product"
)

// fieldMessage maps a field validation error to the message shown to the user.
func fieldMessage(err error) string {
	var fe *product.FieldError
	if !errors.As(err, &fe) {
		return "Erro: " + err.Error() + "."
	}

	notNumber := errors.Is(fe.Err, product.ErrNotANumber)
	switch fe.Field {
	case product.FieldName:
		return "Erro: Nome não pode estar vazio."
	case product.FieldCategory:
		return "Erro: Categoria não pode estar vazia."
	case product.FieldQuantity:
		if notNumber {
			return "Erro: Quantidade inválida, informe um número inteiro."
		}
		return "Erro: Quantidade deve ser um número positivo."
	case product.FieldPrice:
		if notNumber {
			return "Erro: Preço inválido, informe um número."
		}
		return "Erro: Preço deve ser um número positivo."
	}
	return "Erro: " + fe.Error() + "."
}

func (s *Session) add() error {
	s.line("\n=== Adicionar Novo Produto ===\n")

	// Each answer is checked before the next prompt so the first bad
	// field ends the operation.
	steps := []struct {
		label string
		check func(string) error
	}{
		{"Nome do Produto: ", func(v string) error { _, err := product.ValidateName(v); return err }},
		{"Categoria: ", func(v string) error { _, err := product.ValidateCategory(v); return err }},
		{"Quantidade em Estoque: ", func(v string) error { _, err := product.ParseQuantity(v); return err }},
		{"Preço: ", func(v string) error { _, err := product.ParsePrice(v); return err }},
	}

	answers := make([]string, 0, len(steps))
	for _, step := range steps {
		v, err := s.prompt(step.label)
		if err != nil {
			return err
		}
		if err := step.check(v); err != nil {
			s.line(fieldMessage(err) + "\n")
			return nil
		}
		answers = append(answers, v)
	}

	p, err := s.inv.Add(answers[0], answers[1], answers[2], answers[3])
	if err != nil && !s.reportSave(err) {
		s.line(fieldMessage(err) + "\n")
		return nil
	}

	s.printf("Produto adicionado com sucesso! ID: %d\n\n", p.ID)
	return nil
}

func (s *Session) list() {
	products := s.inv.List()
	if len(products) == 0 {
		s.line("\nNenhum produto cadastrado ainda.\n")
		return
	}

	s.line("\n=== Lista de Produtos ===\n")
	for _, line := range product.TableHeader() {
		s.line(line)
	}
	for _, p := range products {
		s.line(product.TableRow(p))
	}
	s.line("")
}

// promptID asks for a product id. It reports false if the input was not an
// integer or no product has that id, after printing the reason.
func (s *Session) promptID() (product.Product, bool, error) {
	input, err := s.prompt("ID do Produto: ")
	if err != nil {
		return product.Product{}, false, err
	}

	id, err := product.ParseID(input)
	if err != nil {
		s.line("Erro: ID inválido.\n")
		return product.Product{}, false, nil
	}

	p, err := s.inv.FindByID(id)
	if err != nil {
		s.line("Erro: Produto não encontrado.\n")
		return product.Product{}, false, nil
	}
	return p, true, nil
}

func (s *Session) update() error {
	s.line("\n=== Atualizar Produto ===\n")

	p, ok, err := s.promptID()
	if err != nil || !ok {
		return err
	}

	s.line("\nO que deseja atualizar?")
	s.line("1. Nome")
	s.line("2. Categoria")
	s.line("3. Quantidade")
	s.line("4. Preço")
	s.line("5. Cancelar\n")

	choice, err := s.prompt("Opção: ")
	if err != nil {
		return err
	}

	var (
		label string
		done  string
		apply func(int, string) (product.Product, error)
	)
	switch choice {
	case UpdateName:
		label, done, apply = "Novo nome: ", "Nome atualizado!", s.inv.UpdateName
	case UpdateCategory:
		label, done, apply = "Nova categoria: ", "Categoria atualizada!", s.inv.UpdateCategory
	case UpdateQuantity:
		label, done, apply = "Nova quantidade: ", "Quantidade atualizada!", s.inv.UpdateQuantity
	case UpdatePrice:
		label, done, apply = "Novo preço: ", "Preço atualizado!", s.inv.UpdatePrice
	case UpdateCancel:
		s.line("Cancelado.\n")
		return nil
	default:
		s.line("Opção inválida.\n")
		return nil
	}

	value, err := s.prompt(label)
	if err != nil {
		return err
	}

	if _, err := apply(p.ID, value); err != nil && !s.reportSave(err) {
		s.line(fieldMessage(err) + "\n")
		return nil
	}
	s.line(done + "\n")
	return nil
}

func (s *Session) delete() error {
	s.line("\n=== Excluir Produto ===\n")

	p, ok, err := s.promptID()
	if err != nil || !ok {
		return err
	}

	answer, err := s.prompt("Tem certeza que quer excluir \"" + p.Name + "\"? (s/n): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, confirmYes) {
		s.line("Cancelado.\n")
		return nil
	}

	if _, err := s.inv.Delete(p.ID); err != nil && !s.reportSave(err) {
		if errors.Is(err, inventory.ErrNotFound) {
			s.line("Erro: Produto não encontrado.\n")
			return nil
		}
		s.line("Erro: " + err.Error() + ".\n")
		return nil
	}
	s.line("Produto excluído.\n")
	return nil
}

func (s *Session) search() error {
	s.line("\n=== Buscar Produto ===\n")

	mode, err := s.prompt("Buscar por (1) ID ou (2) Nome? ")
	if err != nil {
		return err
	}

	var results []product.Product
	switch mode {
	case SearchByID:
		input, err := s.prompt("ID: ")
		if err != nil {
			return err
		}
		if id, err := product.ParseID(input); err == nil {
			results = s.inv.SearchByID(id)
		}
	case SearchByName:
		query, err := s.prompt("Nome (ou parte dele): ")
		if err != nil {
			return err
		}
		results = s.inv.SearchByName(query)
	default:
		s.line("Opção inválida.\n")
		return nil
	}

	if len(results) == 0 {
		s.line("Nenhum produto encontrado.\n")
		return nil
	}

	s.line("\n--- Resultado ---\n")
	for _, p := range results {
		s.line(product.Detail(p))
	}
	return nil
}

// Package session runs the interactive text menu of the inventory manager.
//
// The protocol is line based: every prompt blocks on one line of input, and
// the numbered options of the main menu (1-6) and of the update sub-menu
// (1-5) are stable.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agilstore/agil/internal/inventory"
	"github.com/agilstore/agil/internal/storage"
	"go.uber.org/zap"
)

// Main menu options.
const (
	OptionAdd    = "1"
	OptionList   = "2"
	OptionUpdate = "3"
	OptionDelete = "4"
	OptionSearch = "5"
	OptionExit   = "6"
)

// Update sub-menu options.
const (
	UpdateName     = "1"
	UpdateCategory = "2"
	UpdateQuantity = "3"
	UpdatePrice    = "4"
	UpdateCancel   = "5"
)

// Search modes.
const (
	SearchByID   = "1"
	SearchByName = "2"
)

// confirmYes is the affirmative answer to the delete confirmation.
const confirmYes = "s"

// ErrInput is returned by Run when the input stream can no longer be read.
var ErrInput = errors.New("reading input")

// Session drives the menu loop over an inventory.Manager.
type Session struct {
	inv *inventory.Manager
	in  *bufio.Reader
	out io.Writer
	log *zap.Logger
}

// New returns a Session reading commands from in and writing to out.
func New(inv *inventory.Manager, in io.Reader, out io.Writer, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		inv: inv,
		in:  bufio.NewReader(in),
		out: out,
		log: log,
	}
}

// Run shows the main menu until the user chooses to exit. It returns nil on
// a normal exit, ctx.Err() if ctx is cancelled between prompts, and an error
// wrapping ErrInput if input ends or fails before the exit option.
func (s *Session) Run(ctx context.Context) error {
	s.log.Info("session started")
	for {
		if err := ctx.Err(); err != nil {
			s.log.Info("session cancelled", zap.Error(err))
			return err
		}

		s.showMenu()
		choice, err := s.prompt("Escolha uma opção: ")
		if err != nil {
			return err
		}

		switch choice {
		case OptionAdd:
			err = s.add()
		case OptionList:
			s.list()
		case OptionUpdate:
			err = s.update()
		case OptionDelete:
			err = s.delete()
		case OptionSearch:
			err = s.search()
		case OptionExit:
			s.line("Até logo!\n")
			s.log.Info("session ended")
			return nil
		default:
			s.line("Opção inválida. Tente novamente.\n")
		}

		if err != nil {
			return err
		}
	}
}

func (s *Session) showMenu() {
	s.line("\n--- AGILSTORE ---")
	s.line("Gerenciamento de Produtos\n")
	s.line("1. Adicionar Produto")
	s.line("2. Listar Produtos")
	s.line("3. Atualizar Produto")
	s.line("4. Excluir Produto")
	s.line("5. Buscar Produto")
	s.line("6. Sair\n")
}

// prompt writes label and blocks for one line of input, returned trimmed.
// A final line without a trailing newline is still returned; the read
// after it reports the end of input.
func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		s.log.Error("input stream closed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrInput, err)
	}
	return strings.TrimSpace(line), nil
}

// line writes msg followed by a newline.
func (s *Session) line(msg string) {
	io.WriteString(s.out, msg+"\n")
}

func (s *Session) printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// WriteLoadWarning tells the user that the stored products could not be
// loaded. A rejected record is named so the file can be repaired before the
// next save replaces it.
func WriteLoadWarning(w io.Writer, err error) {
	fmt.Fprintln(w, "Aviso: Não foi possível carregar os produtos anteriores.")

	var re *storage.RecordError
	if errors.As(err, &re) {
		reason := "ID duplicado."
		if !errors.Is(re.Err, storage.ErrDuplicateID) {
			reason = strings.TrimPrefix(fieldMessage(re.Err), "Erro: ")
		}
		fmt.Fprintf(w, "Registro %d inválido (ID %d, %q): %s\n", re.Index, re.Product.ID, re.Product.Name, reason)
		fmt.Fprintln(w, "Corrija o arquivo antes de alterar o estoque; a próxima gravação o substitui.")
		return
	}
	if err != nil {
		fmt.Fprintf(w, "Detalhe: %v\n", err)
	}
}

// reportSave prints a non-fatal warning when persisting failed.
// It reports whether err was a save failure.
func (s *Session) reportSave(err error) bool {
	if errors.Is(err, inventory.ErrSave) {
		s.line("Erro ao salvar os dados.")
		return true
	}
	return false
}

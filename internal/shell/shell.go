// Package shell implements the interactive menu that drives the roster.
//
// The shell is a synchronous read-eval loop: each option runs to completion
// before the menu is shown again. End of input behaves like the exit option.
// Cancelling the context abandons whatever prompt is waiting, including one
// inside an action, so no input typed after an interrupt is applied.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/mmynk/roster/internal/auth"
	"github.com/mmynk/roster/internal/middleware"
	"github.com/mmynk/roster/internal/service"
)

var (
	// errInputClosed is returned by prompts once the input is exhausted.
	errInputClosed = errors.New("input closed")
	// errReadInput wraps failures of the input itself, such as an overlong line.
	errReadInput = errors.New("failed to read input")
)

const (
	// maxUnlockAttempts bounds passphrase retries before an action is refused.
	maxUnlockAttempts = 3
	// maxLineSize is the longest input line accepted.
	maxLineSize = 1 << 20
)

// Main menu options.
const (
	optionAdd = iota + 1
	optionList
	optionDelete
	optionSearch
	optionStatistics
	optionExit
)

// inputLine is one line read from the input, or the error that ended it.
type inputLine struct {
	text string
	err  error
}

// Shell reads commands from in and writes results to out.
type Shell struct {
	svc          *service.RosterService
	in           *bufio.Scanner
	out          io.Writer
	interceptors []middleware.Interceptor

	// lines is fed by a single reader goroutine started on the first read.
	lines      chan inputLine
	readerOnce sync.Once
}

// New creates a Shell over the given service.
func New(svc *service.RosterService, in io.Reader, out io.Writer) *Shell {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	return &Shell{
		svc:   svc,
		in:    scanner,
		out:   out,
		lines: make(chan inputLine),
	}
}

// Use adds interceptors around every menu action. The first one added is
// the outermost.
func (sh *Shell) Use(interceptors ...middleware.Interceptor) {
	sh.interceptors = append(sh.interceptors, interceptors...)
}

// Run shows the menu until the operator exits or input ends. It returns the
// context's error if ctx is cancelled and a wrapped read error if the input
// fails. It does not save; the caller persists the roster after Run returns.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.printMenu()
		line, err := sh.readLine(ctx)
		if err != nil {
			fmt.Fprintln(sh.out)
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}

		option, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(sh.out, "Invalid option, please try again.")
			continue
		}
		if option == optionExit {
			return nil
		}

		name, action := sh.actionFor(option)
		if action == nil {
			fmt.Fprintln(sh.out, "Invalid option, please try again.")
			continue
		}

		err = middleware.Chain(name, action, sh.interceptors...)(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			fmt.Fprintln(sh.out)
			return ctx.Err()
		case errors.Is(err, errInputClosed):
			fmt.Fprintln(sh.out)
			return nil
		case errors.Is(err, errReadInput):
			fmt.Fprintln(sh.out)
			return err
		case errors.Is(err, auth.ErrInvalidCredentials):
			fmt.Fprintln(sh.out, "Access denied.")
		default:
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
	}
}

func (sh *Shell) actionFor(option int) (string, middleware.Action) {
	switch option {
	case optionAdd:
		return "add", sh.addStudent
	case optionList:
		return "list", sh.listByCourse
	case optionDelete:
		return "delete", sh.deleteStudent
	case optionSearch:
		return "search", sh.search
	case optionStatistics:
		return "statistics", sh.statistics
	default:
		return "", nil
	}
}

func (sh *Shell) printMenu() {
	fmt.Fprintln(sh.out, "======= Student Records =======")
	fmt.Fprintln(sh.out, "1. Enter a student record")
	fmt.Fprintln(sh.out, "2. List scores by course")
	fmt.Fprintln(sh.out, "3. Delete a student record")
	fmt.Fprintln(sh.out, "4. Search")
	fmt.Fprintln(sh.out, "5. Statistics")
	fmt.Fprintln(sh.out, "6. Save and exit")
	fmt.Fprint(sh.out, "Option: ")
}

// PassphraseUnlocker returns an Unlocker that asks for the passphrase on the
// shell's own input and issues a session for operator.
func (sh *Shell) PassphraseUnlocker(a auth.Authenticator, sessions *auth.SessionManager, operator string) middleware.Unlocker {
	return func(ctx context.Context) (string, error) {
		fmt.Fprintln(sh.out, "The roster is locked.")
		for attempt := 1; attempt <= maxUnlockAttempts; attempt++ {
			passphrase, err := sh.prompt(ctx, "Passphrase: ")
			if err != nil {
				return "", err
			}
			if err := a.Authenticate(ctx, passphrase); err != nil {
				slog.Warn("Unlock failed", "operator", operator, "attempt", attempt)
				fmt.Fprintln(sh.out, "Wrong passphrase.")
				continue
			}
			return sessions.Generate(operator)
		}
		return "", auth.ErrInvalidCredentials
	}
}

// readLine returns the next input line without its newline. It gives up as
// soon as ctx is cancelled; a line arriving after that stays unread.
func (sh *Shell) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	sh.readerOnce.Do(sh.startReader)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-sh.lines:
		if !ok {
			return "", errInputClosed
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if line.err != nil {
			return "", line.err
		}
		return line.text, nil
	}
}

// startReader scans the input on its own goroutine so prompts can wait on
// the context as well. The goroutine blocks until each line is taken.
func (sh *Shell) startReader() {
	go func() {
		defer close(sh.lines)
		for sh.in.Scan() {
			sh.lines <- inputLine{text: strings.TrimSuffix(sh.in.Text(), "\r")}
		}
		if err := sh.in.Err(); err != nil {
			slog.Error("Failed to read input", "error", err)
			sh.lines <- inputLine{err: fmt.Errorf("%w: %w", errReadInput, err)}
		}
	}()
}

// prompt prints label and returns the reply verbatim.
func (sh *Shell) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(sh.out, label)
	return sh.readLine(ctx)
}

// promptInt asks until the reply is an integer.
func (sh *Shell) promptInt(ctx context.Context, label string) (int, error) {
	for {
		reply, err := sh.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(reply))
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(sh.out, "Please enter a whole number.")
	}
}

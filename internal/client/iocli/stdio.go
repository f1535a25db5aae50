package iocli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализация IO поверх stdin/stdout
type Stdio struct {
	in   *bufio.Reader
	out  io.Writer
	inFd int
}

// NewStdio создает IO для терминала процесса
func NewStdio() IO {
	return &Stdio{
		in:   bufio.NewReader(os.Stdin),
		out:  os.Stdout,
		inFd: int(os.Stdin.Fd()),
	}
}

// NewStdioFrom создает IO поверх произвольных потоков; пароль читается как обычная строка
func NewStdioFrom(in io.Reader, out io.Writer) IO {
	return &Stdio{
		in:   bufio.NewReader(in),
		out:  out,
		inFd: -1,
	}
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)

	// Один reader на все чтения: иначе буферизованный остаток ввода теряется
	input, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.inFd < 0 || !term.IsTerminal(s.inFd) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(s.inFd)
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

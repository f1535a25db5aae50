// Package iocli абстрагирует ввод-вывод CLI, чтобы команды можно было тестировать без терминала.
package iocli

//go:generate moq -out io_mock.go . IO

// IO ввод-вывод команд CLI
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput возвращает строку без пробелов по краям; io.EOF когда ввод закончился
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}

package notifier

import (
	"fmt"
	"os"
)

// ConsoleNotifier writes reports to stdout. Used when Telegram is not
// configured.
type ConsoleNotifier struct{}

func NewConsoleNotifier() *ConsoleNotifier { return &ConsoleNotifier{} }

func (c *ConsoleNotifier) Name() string { return "console" }

func (c *ConsoleNotifier) Send(text string) error {
	_, err := fmt.Fprintln(os.Stdout, text)
	return err
}

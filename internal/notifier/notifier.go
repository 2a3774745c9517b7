package notifier

// Notifier delivers formatted analysis reports to the operator.
type Notifier interface {
	Send(text string) error
	Name() string
}

package telegram

// noopNotifier discards messages. Used when no bot token is configured so
// alert evaluation still runs in development environments.
type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that silently drops messages.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) SendMessage(string) error {
	return nil
}

package mailer

import "github.com/rs/zerolog"

// LocalSender writes messages to the log instead of delivering them.
type LocalSender struct {
	logger *zerolog.Logger
}

func NewLocalSender(logger *zerolog.Logger) *LocalSender {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &LocalSender{logger: logger}
}

func (s *LocalSender) Send(to, subject, textBody string) error {
	s.logger.Info().
		Str("component", "mailer.local").
		Str("to", to).
		Str("subject", subject).
		Str("body", textBody).
		Msg("email not sent, local mode")
	return nil
}

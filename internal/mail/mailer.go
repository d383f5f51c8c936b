package mail

import (
	"context"

	"github.com/labstack/gommon/log"
)

// 実メール送信の代わりにログへ出すMailer。
// 本番のSMTP/プロバイダ連携はこの型の差し替えで入れる。
type LogMailer struct {
	logger *log.Logger
}

// DI
func NewLogMailer() *LogMailer {
	l := log.New("mail")
	l.SetHeader("${time_rfc3339} ${prefix} ${level}")
	return &LogMailer{logger: l}
}

func (m *LogMailer) SendOTP(ctx context.Context, email string, otp string) error {
	m.logger.Infof("password reset OTP for %s: %s", email, otp)
	return nil
}

package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/finsight/internal/config"
	"github.com/Dan9191/finsight/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.smtpSend
	return s
}

func (s *Sender) smtpSend(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

// SendDigest e-mails a user the emergencies and salary delay found by a health check
func (s *Sender) SendDigest(user models.User, check models.HealthCheck) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{user.Email}
	e.Subject = digestSubject(check)
	e.Text = []byte(digestBody(user, check))

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send digest to %s: %v", user.Email, err)
		return fmt.Errorf("failed to send digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", user.Email, e.Subject)
	return nil
}

func digestSubject(check models.HealthCheck) string {
	if check.Emergencies.HasEmergency {
		return "Financial Emergency Alert"
	}
	return "Salary Payment Delayed"
}

func digestBody(user models.User, check models.HealthCheck) string {
	name := user.FullName
	if name == "" {
		name = user.Username
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)

	if len(check.Emergencies.Alerts) > 0 {
		b.WriteString("We noticed the following in your recent transactions:\n")
		for _, a := range check.Emergencies.Alerts {
			fmt.Fprintf(&b, "  - [%s] %s\n", a.Severity, a.Description)
		}
		if check.Emergencies.RecoveryDays > 0 {
			fmt.Fprintf(&b, "At your current savings pace it will take about %d days to recover.\n", check.Emergencies.RecoveryDays)
		}
		if len(check.Emergencies.SuggestedCutbacks) > 0 {
			b.WriteString("\nSuggested cutbacks:\n")
			for _, c := range check.Emergencies.SuggestedCutbacks {
				fmt.Fprintf(&b, "  - %s: save %.2f of %.2f per period\n", c.Category, c.SavingsPotential, c.CurrentSpending)
			}
		}
		b.WriteString("\n")
	}

	if check.Salary != nil && check.Salary.IsDelayed {
		fmt.Fprintf(&b,
			"Your expected payment from %s of %.2f was due on %s and is %d days late.\n\n",
			check.Salary.Source, check.Salary.ExpectedAmount, check.Salary.NextDate, check.Salary.DaysLate,
		)
	}

	b.WriteString("Best regards,\nFinsight")
	return b.String()
}

package delivery

import (
	"net/smtp"
	"strings"
	"testing"

	"github.com/ats/lynchboard/pkg/config"
	"github.com/ats/lynchboard/pkg/logger"
)

func testEmailConfig() config.EmailConfig {
	return config.EmailConfig{
		Recipient: "reader@example.com",
		Subject:   "Daily Portfolio Analysis",
		From:      "dashboard@example.com",
		SMTPHost:  "smtp.example.com",
		SMTPPort:  "587",
		Password:  "app-password",
	}
}

func TestSendHTML(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := NewMailer(testEmailConfig(), logger.Nop())
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	if err := m.SendHTML("Daily Portfolio Analysis", "<h1>digest</h1>"); err != nil {
		t.Fatalf("SendHTML failed: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %s", gotAddr)
	}
	if gotFrom != "dashboard@example.com" {
		t.Errorf("from = %s", gotFrom)
	}
	if len(gotTo) != 1 || gotTo[0] != "reader@example.com" {
		t.Errorf("to = %v", gotTo)
	}

	msg := string(gotMsg)
	for _, want := range []string{
		"Subject: Daily Portfolio Analysis\r\n",
		"Content-Type: text/html",
		"<h1>digest</h1>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSendHTML_NotConfiguredIsNoop(t *testing.T) {
	cfg := testEmailConfig()
	cfg.Password = ""

	called := false
	m := NewMailer(cfg, logger.Nop())
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		called = true
		return nil
	}

	if err := m.SendHTML("subject", "body"); err != nil {
		t.Fatalf("SendHTML failed: %v", err)
	}
	if called {
		t.Error("unconfigured mailer must not attempt delivery")
	}
	if m.Enabled() {
		t.Error("mailer without password must report disabled")
	}
}

package check

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// maxIndicatorHints bounds how many indicator lines one check contributes.
const maxIndicatorHints = 8

// walletPattern matches one kind of cryptocurrency payment address.
type walletPattern struct {
	name    string
	pattern *regexp.Regexp
}

// walletPatterns is checked in order; an address is reported by the
// first pattern that matches it.
var walletPatterns = []walletPattern{
	{"bitcoin", regexp.MustCompile(`\bbc1[a-z0-9]{39,59}\b`)},
	{"bitcoin", regexp.MustCompile(`\b[13][a-km-zA-HJ-NP-Z1-9]{25,34}\b`)},
	{"ethereum", regexp.MustCompile(`\b0x[a-fA-F0-9]{40}\b`)},
	{"monero", regexp.MustCompile(`\b[48][0-9AB][1-9A-HJ-NP-Za-km-z]{93}\b`)},
	{"litecoin", regexp.MustCompile(`\bltc1[a-z0-9]{39,59}\b`)},
	{"dogecoin", regexp.MustCompile(`\bD[5-9A-HJ-NP-U][1-9A-HJ-NP-Za-km-z]{32}\b`)},
	{"tron", regexp.MustCompile(`\bT[1-9A-HJ-NP-Za-km-z]{33}\b`)},
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// freeMailDomains are webmail providers anyone can sign up to.
var freeMailDomains = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"yahoo.com":      true,
	"hotmail.com":    true,
	"outlook.com":    true,
	"live.com":       true,
	"aol.com":        true,
	"icloud.com":     true,
	"mail.com":       true,
	"gmx.com":        true,
	"yandex.com":     true,
	"mail.ru":        true,
	"protonmail.com": true,
	"proton.me":      true,
	"tutanota.com":   true,
	"qq.com":         true,
}

// Indicators scans text for payment addresses and contact emails and
// returns one hint line per distinct match, wallets first.
func Indicators(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var hints []string
	seen := make(map[string]bool)
	add := func(key, hint string) {
		if seen[key] || len(hints) >= maxIndicatorHints {
			return
		}
		seen[key] = true
		hints = append(hints, hint)
	}

	for _, wp := range walletPatterns {
		for _, addr := range wp.pattern.FindAllString(text, -1) {
			add(addr, fmt.Sprintf("contains a cryptocurrency wallet address (%s): %s", wp.name, addr))
		}
	}

	for _, email := range emailPattern.FindAllString(text, -1) {
		email = strings.ToLower(email)
		if IsFreeMail(email) {
			add(email, "contains a free webmail contact address: "+email)
			continue
		}
		add(email, "contains an email address: "+email)
	}
	return hints
}

// IsFreeMail reports whether email belongs to a public webmail provider.
func IsFreeMail(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return false
	}
	return freeMailDomains[strings.ToLower(email[at+1:])]
}

// indicatorStep appends payment and contact indicators found in the
// job's scanned text. It never fails the check.
type indicatorStep struct {
	logger *slog.Logger
}

func (s *indicatorStep) Name() string {
	return "indicators"
}

func (s *indicatorStep) Do(_ context.Context, job *Job) error {
	hints := Indicators(job.Text)
	if len(hints) == 0 {
		return nil
	}
	s.logger.Debug("local indicators found", "count", len(hints))
	job.Request.Hints = append(job.Request.Hints, hints...)
	return nil
}

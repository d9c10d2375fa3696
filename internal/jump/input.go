package jump

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/timvw/tmux-easyjump/internal/screen"
)

// ReadPattern reads the search pattern of n characters. When path is
// non-empty the pattern comes from that file (written by the launcher's
// prompt); otherwise it is read from the terminal in raw mode, one
// keystroke per character. Carriage returns and newlines are stripped, so
// the result may be shorter than n; an empty result means the user gave up.
func ReadPattern(path string, n int) (string, error) {
	var raw string
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("pattern file: %w", err)
		}
		runes := []rune(strings.SplitN(string(data), "\n", 2)[0])
		if len(runes) > n {
			runes = runes[:n]
		}
		raw = string(runes)
	} else {
		var err error
		raw, err = readRawKeys(n)
		if err != nil {
			return "", err
		}
	}

	if strings.ContainsRune(raw, 0x03) { // Ctrl-C
		return "", screen.ErrCancelled
	}
	raw = strings.NewReplacer("\r", "", "\n", "").Replace(raw)
	return raw, nil
}

// readRawKeys reads n keystrokes from the terminal with echo off.
func readRawKeys(n int) (string, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	var sb strings.Builder
	var b [4]byte
	for utf8.RuneCountInString(sb.String()) < n {
		k := 0
		for {
			if _, err := os.Stdin.Read(b[k : k+1]); err != nil {
				return "", err
			}
			k++
			if utf8.FullRune(b[:k]) || k == 4 {
				break
			}
		}
		r, _ := utf8.DecodeRune(b[:k])
		if r == 0x03 {
			return "", screen.ErrCancelled
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

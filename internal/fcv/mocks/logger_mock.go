package mocks

import (
	"fmt"
	"strings"
)

// MockLogger は出力されたメッセージを記録するLogger
type MockLogger struct {
	Messages []string
}

// Printf はメッセージを記録します
func (l *MockLogger) Printf(format string, a ...any) {
	l.Messages = append(l.Messages, fmt.Sprintf(format, a...))
}

// Contains は部分文字列を含むメッセージがあるか確認します
func (l *MockLogger) Contains(substr string) bool {
	for _, m := range l.Messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
